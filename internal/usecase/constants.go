package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultRateCacheTTL is how long LatestRate answers stay cached.
	DefaultRateCacheTTL = 5 * time.Minute

	// DefaultActor is recorded when the caller does not identify itself.
	DefaultActor = "system"
)

func actorOrDefault(actor string) string {
	if actor == "" {
		return DefaultActor
	}
	return actor
}
