package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/paisapal/paisa/internal/analytics"
	"github.com/paisapal/paisa/internal/assistant"
	"github.com/paisapal/paisa/internal/auth"
	"github.com/paisapal/paisa/internal/config"
	"github.com/paisapal/paisa/internal/logger"
	"github.com/paisapal/paisa/internal/repository"
	"github.com/paisapal/paisa/internal/store"
)

// app bundles the wired collaborators a command needs.
type app struct {
	cfg      *config.Config
	repo     *repository.Repository
	provider *auth.LocalProvider
	cleanup  func()
}

// openApp boots config, store, and repository, and loads persisted state.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	s, cleanup, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Day boundaries (streaks, due windows, monthly figures) follow the
	// configured timezone, not UTC.
	loc := cfg.Location()
	repo := repository.NewWithClock(s, func() time.Time { return time.Now().In(loc) })
	repo.LoadAll(ctx)

	return &app{
		cfg:      cfg,
		repo:     repo,
		provider: auth.NewLocalProvider(s),
		cleanup:  cleanup,
	}, nil
}

func (a *app) close() {
	if a.cleanup != nil {
		a.cleanup()
	}
}

// advisor builds the degrading advice chain. Without an API key the chain
// is local-only.
func (a *app) advisor(ctx context.Context) *assistant.Service {
	if a.cfg.GeminiAPIKey == "" {
		return assistant.NewService(nil)
	}
	gemini, err := assistant.NewGemini(ctx, a.cfg.GeminiAPIKey)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("gemini unavailable, using local advisor")
		return assistant.NewService(nil)
	}
	return assistant.NewService(gemini)
}

// financeContext assembles the advisor context from current state.
func (a *app) financeContext() assistant.Context {
	user, _ := a.repo.User()
	txs := a.repo.Transactions()
	monthly := analytics.MonthlyTransactions(txs, a.now())
	summary := analytics.Summarize(monthly)

	return assistant.Context{
		Balance:        user.Balance,
		MonthlyIncome:  summary.Income,
		MonthlyExpense: summary.Expense,
		TxCount:        len(txs),
		StreakDays:     user.StreakDays,
		CategoryTotals: analytics.CategoryTotals(monthly),
	}
}

// now is the wall clock in the configured timezone, shared with the
// repository's streak evaluation.
func (a *app) now() time.Time {
	return time.Now().In(a.cfg.Location())
}

// readPassword prompts without echoing when stdin is a terminal, falling
// back to a plain line read otherwise (tests, pipes).
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(syscall.Stdin)
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
