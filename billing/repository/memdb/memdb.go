// Package memdb is an in-memory implementation of the billing repositories.
// It enforces the same unique constraints and conditional updates as the
// Postgres schema so concurrency behaviour can be tested without a database.
package memdb

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"trm.app/billing/repository"
	"trm.app/billing/repository/events"
	"trm.app/billing/repository/invoices"
	"trm.app/billing/repository/parties"
	"trm.app/billing/repository/subscriptions"
)

// DB serializes writers the way row locks serialize the billing transactions:
// a transaction holds writeMu from begin to commit or rollback and works on a
// private copy of the committed state.
type DB struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	data    *state

	faultMu sync.Mutex
	faults  map[string]error
}

func New() *DB {
	return &DB{
		data:   newState(),
		faults: make(map[string]error),
	}
}

var _ repository.TxManager = (*DB)(nil)

// Repository returns queriers that run each statement in its own transaction.
func (db *DB) Repository() *repository.Repository {
	return newRepository(&conn{db: db})
}

func (db *DB) RunInTx(ctx context.Context, fn func(ctx context.Context, repo *repository.Repository) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	db.mu.RLock()
	working := db.data.clone()
	db.mu.RUnlock()

	if err := fn(ctx, newRepository(&conn{db: db, tx: working})); err != nil {
		return err
	}

	db.mu.Lock()
	db.data = working
	db.mu.Unlock()
	return nil
}

// FailNext makes the next call of the named query method return err.
func (db *DB) FailNext(op string, err error) {
	db.faultMu.Lock()
	defer db.faultMu.Unlock()
	db.faults[op] = err
}

// PutSubscription stores a subscription as the subscription lifecycle would.
func (db *DB) PutSubscription(s subscriptions.Subscription) {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()
	db.mu.Lock()
	defer db.mu.Unlock()
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	if !s.CreatedAt.Valid {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	db.data.subscriptions[s.ID] = s
}

// SequenceValue returns the last allocated invoice sequence for the type and month.
func (db *DB) SequenceValue(invoiceType, yearMonth string) int32 {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.data.sequences[sequenceKey{invoiceType: invoiceType, yearMonth: yearMonth}]
}

// InvoiceCount returns the number of committed invoices.
func (db *DB) InvoiceCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.data.invoices)
}

func newRepository(c *conn) *repository.Repository {
	return &repository.Repository{
		Events:        &eventStore{c},
		Invoices:      &invoiceStore{c},
		Parties:       &partyStore{c},
		Subscriptions: &subscriptionStore{c},
	}
}

// conn is either bound to a transaction's working state or, when tx is nil,
// autocommits against the committed state.
type conn struct {
	db *DB
	tx *state
}

func (c *conn) begin(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.db.faultMu.Lock()
	defer c.db.faultMu.Unlock()
	if err, ok := c.db.faults[op]; ok {
		delete(c.db.faults, op)
		return err
	}
	return nil
}

func (c *conn) read() (*state, func()) {
	if c.tx != nil {
		return c.tx, func() {}
	}
	c.db.mu.RLock()
	return c.db.data, c.db.mu.RUnlock
}

func (c *conn) write() (*state, func()) {
	if c.tx != nil {
		return c.tx, func() {}
	}
	c.db.writeMu.Lock()
	c.db.mu.Lock()
	return c.db.data, func() {
		c.db.mu.Unlock()
		c.db.writeMu.Unlock()
	}
}

type eventKey struct {
	kind      string
	sourceRef string
}

type invoiceKey struct {
	eventID     int64
	invoiceType string
}

type sequenceKey struct {
	invoiceType string
	yearMonth   string
}

type state struct {
	events          map[int64]events.BillableEvent
	eventKeys       map[eventKey]int64
	nextEventID     int64
	invoices        map[int64]invoices.Invoice
	invoiceByEvent  map[invoiceKey]int64
	invoiceByNumber map[string]int64
	nextInvoiceID   int64
	lineItems       map[int64][]invoices.InvoiceLineItem
	nextLineItemID  int64
	sequences       map[sequenceKey]int32
	overrides       map[string]parties.PartyRateOverride
	subscriptions   map[string]subscriptions.Subscription
}

func newState() *state {
	return &state{
		events:          make(map[int64]events.BillableEvent),
		eventKeys:       make(map[eventKey]int64),
		invoices:        make(map[int64]invoices.Invoice),
		invoiceByEvent:  make(map[invoiceKey]int64),
		invoiceByNumber: make(map[string]int64),
		lineItems:       make(map[int64][]invoices.InvoiceLineItem),
		sequences:       make(map[sequenceKey]int32),
		overrides:       make(map[string]parties.PartyRateOverride),
		subscriptions:   make(map[string]subscriptions.Subscription),
	}
}

func (s *state) clone() *state {
	c := &state{
		events:          copyMap(s.events),
		eventKeys:       copyMap(s.eventKeys),
		nextEventID:     s.nextEventID,
		invoices:        copyMap(s.invoices),
		invoiceByEvent:  copyMap(s.invoiceByEvent),
		invoiceByNumber: copyMap(s.invoiceByNumber),
		nextInvoiceID:   s.nextInvoiceID,
		lineItems:       make(map[int64][]invoices.InvoiceLineItem, len(s.lineItems)),
		nextLineItemID:  s.nextLineItemID,
		sequences:       copyMap(s.sequences),
		overrides:       copyMap(s.overrides),
		subscriptions:   copyMap(s.subscriptions),
	}
	for id, items := range s.lineItems {
		c.lineItems[id] = append([]invoices.InvoiceLineItem(nil), items...)
	}
	return c
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           pgerrcode.UniqueViolation,
		Message:        "duplicate key value violates unique constraint \"" + constraint + "\"",
		ConstraintName: constraint,
	}
}

func foreignKeyViolation(constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           pgerrcode.ForeignKeyViolation,
		Message:        "insert violates foreign key constraint \"" + constraint + "\"",
		ConstraintName: constraint,
	}
}

func now() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
}

// within reports whether t satisfies the optional half-open [from, to) filter.
func within(t time.Time, from, to pgtype.Timestamptz) bool {
	if from.Valid && t.Before(from.Time) {
		return false
	}
	if to.Valid && !t.Before(to.Time) {
		return false
	}
	return true
}

func page[T any](items []T, limit, offset int32) []T {
	if offset >= int32(len(items)) {
		return nil
	}
	items = items[offset:]
	if limit >= 0 && int32(len(items)) > limit {
		items = items[:limit]
	}
	return items
}
