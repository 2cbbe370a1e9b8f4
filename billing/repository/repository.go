package repository

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"trm.app/billing/repository/events"
	"trm.app/billing/repository/invoices"
	"trm.app/billing/repository/parties"
	"trm.app/billing/repository/subscriptions"
)

// Repository combines all domain-specific repositories
type Repository struct {
	Events        events.Querier
	Invoices      invoices.Querier
	Parties       parties.Querier
	Subscriptions subscriptions.Querier
}

// NewRepository creates a new Repository with all domain queriers
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Events:        events.New(db),
		Invoices:      invoices.New(db),
		Parties:       parties.New(db),
		Subscriptions: subscriptions.New(db),
	}
}

func newTxRepository(tx pgx.Tx) *Repository {
	return &Repository{
		Events:        events.New(tx),
		Invoices:      invoices.New(tx),
		Parties:       parties.New(tx),
		Subscriptions: subscriptions.New(tx),
	}
}
