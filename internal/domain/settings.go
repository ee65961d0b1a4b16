package domain

import "time"

// ResendCooldown is the wait between two verification code requests.
const ResendCooldown = 45 * time.Second

type Settings struct {
	APIBaseOverride string
	ResetCodeSentAt time.Time
}

// ResendRemaining reports how long until another verification code may be
// requested. Zero means now.
func (s Settings) ResendRemaining(now time.Time) time.Duration {
	if s.ResetCodeSentAt.IsZero() {
		return 0
	}

	remaining := s.ResetCodeSentAt.Add(ResendCooldown).Sub(now)
	if remaining < 0 {
		return 0
	}

	return remaining
}
