package khata

import (
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/shared"
)

// BlacklistEntry marks a phone number that should never be booked again.
// The blacklist is a plain phone set: it works even when no khata record
// exists for the number yet.
type BlacklistEntry struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	Phone     string    `gorm:"uniqueIndex"`
	Reason    string
	CreatedAt time.Time
}

// TableName returns the database table name
func (BlacklistEntry) TableName() string {
	return "blacklist_entries"
}

// NewBlacklistEntry creates a blacklist entry for a phone number
func NewBlacklistEntry(phone, reason string) (*BlacklistEntry, error) {
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	return &BlacklistEntry{
		ID:        uuid.New(),
		Phone:     phone,
		Reason:    reason,
		CreatedAt: time.Now(),
	}, nil
}
