package finance

import (
	"time"

	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AdPlatform identifies where marketing money was spent
type AdPlatform string

const (
	AdPlatformFacebook AdPlatform = "facebook"
	AdPlatformTikTok   AdPlatform = "tiktok"
	AdPlatformGoogle   AdPlatform = "google"
	AdPlatformOther    AdPlatform = "other"
)

// IsValid checks if the ad platform is recognized
func (p AdPlatform) IsValid() bool {
	switch p {
	case AdPlatformFacebook, AdPlatformTikTok, AdPlatformGoogle, AdPlatformOther:
		return true
	}
	return false
}

// AdSpend is a dated marketing cost. It is tracked apart from general
// expenses so the dashboard can show ad money as its own line; it carries
// no project tag.
type AdSpend struct {
	shared.BaseEntity
	SpendDate time.Time `gorm:"index"`
	Platform  AdPlatform
	Notes     string
	Amount    decimal.Decimal `gorm:"type:decimal(14,2)"`
}

// TableName returns the database table name
func (AdSpend) TableName() string {
	return "ad_spends"
}

// NewAdSpend creates a validated ad spend record
func NewAdSpend(spendDate time.Time, platform AdPlatform, notes string, amount decimal.Decimal) (*AdSpend, error) {
	if !platform.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Unknown ad platform")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Ad spend amount must be positive")
	}

	return &AdSpend{
		BaseEntity: shared.NewBaseEntity(),
		SpendDate:  spendDate,
		Platform:   platform,
		Notes:      notes,
		Amount:     amount,
	}, nil
}
