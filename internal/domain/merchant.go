package domain

import "time"

// Merchant owns orders and payments and authenticates with an API key pair.
type Merchant struct {
	ID            string
	Name          string
	Email         string
	APIKey        string
	APISecretHash string
	CreatedAt     time.Time
}
