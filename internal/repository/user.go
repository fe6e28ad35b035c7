package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paisapal/paisa/internal/logger"
	"github.com/paisapal/paisa/internal/models"
)

// UserPatch is a shallow partial update of the user profile. Nil fields
// are left untouched.
type UserPatch struct {
	Name          *string
	Email         *string
	Phone         *string
	ReferralCode  *string
	Balance       *decimal.Decimal
	StreakDays    *int
	Points        *int
	LastLoginDate *time.Time
}

// SetUser replaces the user record, seeding the streak to 1 and the last
// login date to today when unset, and persists immediately.
func (r *Repository) SetUser(ctx context.Context, user models.User) error {
	r.mu.Lock()
	if user.StreakDays < 1 {
		user.StreakDays = 1
	}
	if user.LastLoginDate.IsZero() {
		user.LastLoginDate = models.DateOf(r.now())
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now()
	}
	r.user = &user
	err := r.persistUser(ctx)
	r.mu.Unlock()

	logger.Log.Info().
		Str("user", logger.HashEmail(user.Email)).
		Int("streak_days", user.StreakDays).
		Msg("user profile set")
	r.notify()
	return err
}

// UpdateUser shallow-merges the patch into the current user record. It is
// a no-op when no user is loaded.
func (r *Repository) UpdateUser(ctx context.Context, patch UserPatch) error {
	r.mu.Lock()
	if r.user == nil {
		r.mu.Unlock()
		return nil
	}
	applyUserPatch(r.user, patch)
	err := r.persistUser(ctx)
	r.mu.Unlock()
	r.notify()
	return err
}

func applyUserPatch(u *models.User, patch UserPatch) {
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.ReferralCode != nil {
		u.ReferralCode = *patch.ReferralCode
	}
	if patch.Balance != nil {
		u.Balance = *patch.Balance
	}
	if patch.StreakDays != nil {
		u.StreakDays = *patch.StreakDays
	}
	if patch.Points != nil {
		u.Points = *patch.Points
	}
	if patch.LastLoginDate != nil {
		u.LastLoginDate = *patch.LastLoginDate
	}
}

// applyBalance is the single primitive through which transaction effects
// reach the ledger. Callers hold the state mutex.
func (r *Repository) applyBalance(delta decimal.Decimal) {
	r.user.Balance = r.user.Balance.Add(delta)
}
