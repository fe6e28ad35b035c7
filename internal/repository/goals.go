package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/paisapal/paisa/internal/logger"
	"github.com/paisapal/paisa/internal/models"
)

// GoalPatch is a shallow partial update of a goal. Nil fields are left
// untouched.
type GoalPatch struct {
	Name          *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	Icon          *string
}

// AddGoal validates and records a new savings goal. CurrentAmount starts
// at zero unless the input provides one.
func (r *Repository) AddGoal(ctx context.Context, input models.Goal) (models.Goal, error) {
	r.mu.Lock()
	if r.user == nil {
		r.mu.Unlock()
		return models.Goal{}, ErrNoUser
	}
	if err := input.Validate(); err != nil {
		r.mu.Unlock()
		return models.Goal{}, err
	}

	goal := input
	if goal.ID == "" {
		goal.ID = models.NewID()
	}
	if goal.UserID == "" {
		goal.UserID = r.user.ID
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = r.now()
	}

	r.goals = append([]models.Goal{goal}, r.goals...)
	err := r.persistGoals(ctx)
	r.mu.Unlock()

	logger.Log.Debug().Str("goal_id", goal.ID).Str("name", goal.Name).Msg("goal added")
	r.notify()
	return goal, err
}

// UpdateGoal shallow-merges the patch into the goal with the given ID. A
// missing ID is a silent no-op.
func (r *Repository) UpdateGoal(ctx context.Context, id string, patch GoalPatch) error {
	r.mu.Lock()
	idx := r.goalIndex(id)
	if idx < 0 {
		r.mu.Unlock()
		return nil
	}

	g := &r.goals[idx]
	if patch.Name != nil {
		g.Name = *patch.Name
	}
	if patch.TargetAmount != nil {
		g.TargetAmount = *patch.TargetAmount
	}
	if patch.CurrentAmount != nil {
		g.CurrentAmount = *patch.CurrentAmount
	}
	if patch.Icon != nil {
		g.Icon = *patch.Icon
	}

	err := r.persistGoals(ctx)
	r.mu.Unlock()
	r.notify()
	return err
}

// DeleteGoal removes the goal with the given ID. A missing ID is a silent
// no-op.
func (r *Repository) DeleteGoal(ctx context.Context, id string) error {
	r.mu.Lock()
	idx := r.goalIndex(id)
	if idx < 0 {
		r.mu.Unlock()
		return nil
	}
	r.goals = append(r.goals[:idx], r.goals[idx+1:]...)
	err := r.persistGoals(ctx)
	r.mu.Unlock()
	r.notify()
	return err
}

// AddFunds moves the goal's CurrentAmount up by amount and records a
// matching income transaction tagged "Goal Funding", so funding a goal
// raises the balance by the same amount and stays auditable. A missing
// goal ID is a silent no-op; a non-positive amount is rejected before any
// state changes.
func (r *Repository) AddFunds(ctx context.Context, goalID string, amount decimal.Decimal) error {
	r.mu.Lock()
	if !amount.IsPositive() {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", models.ErrInvalidAmount, amount)
	}
	idx := r.goalIndex(goalID)
	if idx < 0 {
		r.mu.Unlock()
		return nil
	}
	if r.user == nil {
		r.mu.Unlock()
		return ErrNoUser
	}

	g := &r.goals[idx]
	g.CurrentAmount = g.CurrentAmount.Add(amount)

	_, txErr := r.addTransactionLocked(ctx, models.Transaction{
		Type:     models.TypeIncome,
		Amount:   amount,
		Category: models.GoalFundingCategory,
		Note:     fmt.Sprintf("Added to goal: %s", g.Name),
	})

	err := errors.Join(r.persistGoals(ctx), txErr)
	r.mu.Unlock()

	logger.Log.Debug().Str("goal_id", goalID).Msg("goal funded")
	r.notify()
	return err
}

// goalIndex finds a goal by ID. Callers hold the state mutex.
func (r *Repository) goalIndex(id string) int {
	for i, g := range r.goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}
