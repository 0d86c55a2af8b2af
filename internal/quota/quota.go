// Package quota tracks and persists the daily API call allowance.
package quota

import (
	"errors"
	"time"
)

// ErrQuotaExceeded is returned when a remote call is requested after the
// daily allowance has been used up.
var ErrQuotaExceeded = errors.New("daily API call quota exceeded")

// State holds the persisted call counters. The zero value means the quota
// was never initialized and any call is allowed.
type State struct {
	LastAccess time.Time
	CallsMade  int
	DailyLimit int
}

// CanCall reports whether another remote call is allowed at the given time.
// It is true when the state was never initialized, when the calendar date
// moved past the last access, or when the counter is still under the limit.
func (s State) CanCall(now time.Time) bool {
	if s.LastAccess.IsZero() {
		return true
	}
	if dateOf(now).After(dateOf(s.LastAccess)) {
		return true
	}
	return s.CallsMade < s.DailyLimit
}

// RecordCall accounts for one completed remote call. The counter resets
// when the calendar date rolled over since the last access; the reset is
// logical and only materializes here, not as a separate persisted event.
func (s *State) RecordCall(now time.Time) {
	if !s.LastAccess.IsZero() && dateOf(now).After(dateOf(s.LastAccess)) {
		s.CallsMade = 0
	}
	s.CallsMade++
	s.LastAccess = now
}

// Remaining returns how many calls are left today. A rolled-over date means
// the full limit is available again.
func (s State) Remaining(now time.Time) int {
	if s.LastAccess.IsZero() || dateOf(now).After(dateOf(s.LastAccess)) {
		return s.DailyLimit
	}
	if s.CallsMade >= s.DailyLimit {
		return 0
	}
	return s.DailyLimit - s.CallsMade
}

func dateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
