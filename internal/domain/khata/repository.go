package khata

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PersonRepository defines the interface for khata persistence
type PersonRepository interface {
	// FindByID finds a person by ID, ledger included in entry order
	FindByID(ctx context.Context, id uuid.UUID) (*Person, error)

	// FindByPhone finds a person by phone number
	FindByPhone(ctx context.Context, phone string) (*Person, error)

	// FindAll finds people with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Person, error)

	// Save creates or updates a person (ledger entries excluded)
	Save(ctx context.Context, person *Person) error

	// AppendLedgerEntry posts a ledger entry under a per-person row lock so
	// the running-balance invariant holds under concurrent clients. The
	// returned entry carries the computed balance.
	AppendLedgerEntry(ctx context.Context, personID uuid.UUID, entryDate time.Time, description string, debit, credit decimal.Decimal) (*LedgerEntry, error)

	// IncrementReturnCount atomically bumps the RTO counter for the person
	// matching the phone. Missing phone is not an error; it reports whether
	// a person was updated.
	IncrementReturnCount(ctx context.Context, phone string) (bool, error)

	// Delete removes a person and their ledger
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts people matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// BlacklistRepository defines the interface for the phone blacklist
type BlacklistRepository interface {
	// IsBlacklisted reports whether the phone is on the blacklist
	IsBlacklisted(ctx context.Context, phone string) (bool, error)

	// Add puts a phone on the blacklist; adding an existing phone is a no-op
	Add(ctx context.Context, entry *BlacklistEntry) error

	// Remove takes a phone off the blacklist
	Remove(ctx context.Context, phone string) error

	// FindAll lists all blacklist entries
	FindAll(ctx context.Context) ([]BlacklistEntry, error)
}
