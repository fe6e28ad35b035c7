// Package models defines the domain entities for the personal finance tracker.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

// Transaction types. The sign of a transaction's balance impact is derived
// from its type; amounts are always stored positive.
const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Frequency is the recurrence step of a bill.
type Frequency string

// Bill frequencies. FrequencyOneTime means the anchor due date is the only
// occurrence.
const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
	FrequencyOneTime Frequency = "one-time"
)

// GoalFundingCategory tags the income transaction created when funds are
// added to a savings goal.
const GoalFundingCategory = "Goal Funding"

// DefaultBillCategory is used for bill-payment expenses when the bill has
// no category of its own.
const DefaultBillCategory = "Bills"

// User is the single local user profile. Balance is a running ledger
// maintained incrementally from transaction effects and may go negative.
type User struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone,omitempty"`
	ReferralCode  string          `json:"referralCode,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	StreakDays    int             `json:"streakDays"`
	LastLoginDate time.Time       `json:"lastLoginDate"`
	Points        int             `json:"points"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Transaction is a single income or expense entry. Transactions are
// immutable once created; corrections are delete-and-recreate.
type Transaction struct {
	ID       string          `json:"id"`
	UserID   string          `json:"userId"`
	Type     TransactionType `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Note     string          `json:"note,omitempty"`
	Receipt  string          `json:"receipt,omitempty"`
	Date     time.Time       `json:"date"`
}

// Goal is a savings goal. CurrentAmount only grows; the app has no
// withdraw-from-goal flow.
type Goal struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Icon          string          `json:"icon,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Bill is a due-payment template. DueDate is the anchor; concrete
// occurrences are projected on demand and never persisted. IsPaid applies
// to the template as a whole and suppresses the entire series.
// PaidOccurrences lists individually settled occurrence dates in
// "2006-01-02" form for recurring bills paid one period at a time.
type Bill struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category,omitempty"`
	Icon            string          `json:"icon,omitempty"`
	DueDate         time.Time       `json:"dueDate"`
	IsRecurring     bool            `json:"isRecurring"`
	Frequency       Frequency       `json:"frequency,omitempty"`
	IsPaid          bool            `json:"isPaid"`
	PaidDate        time.Time       `json:"paidDate,omitzero"`
	PaidOccurrences []string        `json:"paidOccurrences,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OccurrencePaid reports whether the occurrence on the given day has been
// individually settled.
func (b Bill) OccurrencePaid(day time.Time) bool {
	key := DateOf(day).Format(DateLayout)
	for _, p := range b.PaidOccurrences {
		if p == key {
			return true
		}
	}
	return false
}

// Occurrence is a computed due-date instance of a bill within a query
// window. It carries the bill template plus the concrete date.
type Occurrence struct {
	Bill    Bill      `json:"bill"`
	DueDate time.Time `json:"dueDate"`
}

// DateLayout is the canonical day-granularity date format.
const DateLayout = "2006-01-02"

// DateOf reduces a timestamp to its calendar day, taken in the
// timestamp's own location, keyed as midnight UTC. All due-date and streak
// comparisons happen on these day keys, so "today" follows the clock's
// zone rather than flipping at the UTC boundary.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// NewID returns a fresh unique entity identifier.
func NewID() string {
	return uuid.NewString()
}

// NewReferralCode builds a share code from the tail of the user's phone
// number plus a random suffix, e.g. "PAISA43219F3A".
func NewReferralCode(phone string) string {
	tail := phone
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return "PAISA" + tail + suffix
}
