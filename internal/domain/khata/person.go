package khata

import (
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PersonType distinguishes customers from vendors in the khata
type PersonType string

const (
	PersonTypeCustomer PersonType = "customer"
	PersonTypeVendor   PersonType = "vendor"
)

// IsValid checks if the person type is recognized
func (t PersonType) IsValid() bool {
	return t == PersonTypeCustomer || t == PersonTypeVendor
}

// LedgerEntry is one line of a person's khata. Entries are append-only:
// corrections are made with new entries, never edits. The stored Balance is
// the running balance after this entry.
type LedgerEntry struct {
	ID          uuid.UUID `gorm:"primaryKey"`
	PersonID    uuid.UUID `gorm:"index"`
	EntryDate   time.Time
	Description string
	Debit       decimal.Decimal `gorm:"type:decimal(14,2)"`
	Credit      decimal.Decimal `gorm:"type:decimal(14,2)"`
	Balance     decimal.Decimal `gorm:"type:decimal(14,2)"`
	CreatedAt   time.Time
}

// TableName returns the database table name
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// Person is a customer or vendor with a running khata balance.
// Positive balance = receivable (customer owes us), negative = payable.
// Phone is the natural key used to match people across imports and orders.
type Person struct {
	shared.BaseAggregateRoot
	Name        string
	Phone       string `gorm:"uniqueIndex"`
	Type        PersonType
	Balance     decimal.Decimal `gorm:"type:decimal(14,2)"`
	Ledger      []LedgerEntry   `gorm:"foreignKey:PersonID"`
	ReturnCount int
}

var _ shared.AggregateRoot = (*Person)(nil)

// TableName returns the database table name
func (Person) TableName() string {
	return "people"
}

// NewPerson creates a new person with an empty ledger and zero balance
func NewPerson(name, phone string, personType PersonType) (*Person, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	if !personType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PERSON_TYPE", "Type must be customer or vendor")
	}

	return &Person{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Type:              personType,
		Balance:           decimal.Zero,
		Ledger:            make([]LedgerEntry, 0),
	}, nil
}

// PostEntry appends a ledger entry, computing the running balance from the
// last entry (or zero on an empty ledger) and moving the person's top-level
// balance to match. By convention exactly one of debit/credit is non-zero,
// but that is not enforced.
func (p *Person) PostEntry(entryDate time.Time, description string, debit, credit decimal.Decimal) (*LedgerEntry, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Ledger entry description cannot be empty")
	}
	if debit.IsNegative() || credit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Debit and credit cannot be negative")
	}

	lastBalance := decimal.Zero
	if n := len(p.Ledger); n > 0 {
		lastBalance = p.Ledger[n-1].Balance
	}
	newBalance := lastBalance.Add(debit).Sub(credit)

	entry := LedgerEntry{
		ID:          uuid.New(),
		PersonID:    p.ID,
		EntryDate:   entryDate,
		Description: description,
		Debit:       debit,
		Credit:      credit,
		Balance:     newBalance,
		CreatedAt:   time.Now(),
	}

	p.Ledger = append(p.Ledger, entry)
	p.Balance = newBalance
	p.UpdatedAt = time.Now()

	return &entry, nil
}

// IncrementReturnCount records one more RTO against this person
func (p *Person) IncrementReturnCount() {
	p.ReturnCount++
	p.UpdatedAt = time.Now()
}

// Rename changes the person's display name
func (p *Person) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

// ChangePhone updates the person's phone number
func (p *Person) ChangePhone(phone string) error {
	if phone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	p.Phone = phone
	p.UpdatedAt = time.Now()
	return nil
}

// IsReceivable returns true when the person owes the business
func (p *Person) IsReceivable() bool {
	return p.Balance.IsPositive()
}

// IsPayable returns true when the business owes the person
func (p *Person) IsPayable() bool {
	return p.Balance.IsNegative()
}
