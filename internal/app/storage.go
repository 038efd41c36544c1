package app

import (
	"database/sql"

	"paygate/internal/repository"
	"paygate/internal/repository/memory"
	"paygate/internal/repository/postgres"
)

// Repositories bundles the storage capability used by the services.
type Repositories struct {
	Merchants repository.MerchantRepository
	Orders    repository.OrderRepository
	Payments  repository.PaymentRepository
}

// NewRepositories returns PostgreSQL repositories, or in-memory ones when db
// is nil.
func NewRepositories(db *sql.DB) Repositories {
	if db == nil {
		return Repositories{
			Merchants: memory.NewMerchantRepository(),
			Orders:    memory.NewOrderRepository(),
			Payments:  memory.NewPaymentRepository(),
		}
	}

	return Repositories{
		Merchants: postgres.NewMerchantRepository(db),
		Orders:    postgres.NewOrderRepository(db),
		Payments:  postgres.NewPaymentRepository(db),
	}
}
