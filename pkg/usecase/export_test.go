package usecase

import "time"

// SetAggregateClock replaces the clock used to stamp bundles
func SetAggregateClock(uc *AggregateUseCase, now func() time.Time) {
	uc.now = now
}

// SetKeySetClock replaces the clock of the JWKS cache
func SetKeySetClock(r *JWTResolver, now func() time.Time) {
	r.keys.now = now
}
