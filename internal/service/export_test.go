package service

import "time"

// SetTimeNow replaces the package clock and returns a restore func.
func SetTimeNow(fn func() time.Time) func() {
	prev := timeNow
	timeNow = fn
	return func() { timeNow = prev }
}
