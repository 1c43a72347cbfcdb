package interfaces

import "time"

// TimeProvider supplies the current time for record timestamps and expiry checks.
// Injected so tests can drive a mock clock instead of time.Now().
type TimeProvider interface {
	Now() time.Time
}
