package repository

import (
	"time"

	"github.com/paisapal/paisa/internal/models"
)

// evaluateStreak runs the once-per-load daily streak transition:
//
//	last login today      -> unchanged
//	last login yesterday  -> streak + 1
//	anything else         -> streak resets to 1
//
// "Anything else" covers a gap of two or more days, a never-set login
// date, and a last login after today from clock skew. LastLoginDate is
// always left at today. Returns whether the record changed and needs a
// persist.
func evaluateStreak(user *models.User, now time.Time) bool {
	today := models.DateOf(now)
	last := models.DateOf(user.LastLoginDate)

	if !user.LastLoginDate.IsZero() && last.Equal(today) {
		return false
	}

	if !user.LastLoginDate.IsZero() && last.AddDate(0, 0, 1).Equal(today) {
		user.StreakDays++
	} else {
		user.StreakDays = 1
	}
	user.LastLoginDate = today
	return true
}
