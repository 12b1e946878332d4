package contracts

import "time"

// Clock abstracts time so lifecycle decisions stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the wall clock used in production wiring.
func SystemClock() Clock { return systemClock{} }
