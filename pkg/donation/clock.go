package donation

import "time"

// Clock supplies the current time to the lifecycle engine. Expiration and
// reservation-TTL checks all go through it so tests can move time instead of
// sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func SystemClock() Clock { return systemClock{} }
