package khata

import (
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/khata"
	"github.com/shopspring/decimal"
)

// CreatePersonRequest represents a request to open a khata for a customer
// or vendor
type CreatePersonRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Phone string `json:"phone" binding:"required,pk_phone"`
	Type  string `json:"type" binding:"required,oneof=customer vendor"`
}

// UpdatePersonRequest represents a partial update to a person
type UpdatePersonRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone *string `json:"phone" binding:"omitempty,pk_phone"`
}

// PostLedgerEntryRequest appends one line to a person's khata. By
// convention exactly one of debit/credit is non-zero.
type PostLedgerEntryRequest struct {
	EntryDate   time.Time       `json:"entry_date"`
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// BlacklistRequest puts a phone on the blacklist
type BlacklistRequest struct {
	Phone  string `json:"phone" binding:"required,pk_phone"`
	Reason string `json:"reason" binding:"max=500"`
}

// LedgerEntryResponse is one khata line in API responses
type LedgerEntryResponse struct {
	ID          uuid.UUID       `json:"id"`
	EntryDate   time.Time       `json:"entry_date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PersonResponse represents a person in API responses. Ledger is populated
// on single-person reads only.
type PersonResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Phone        string                `json:"phone"`
	Type         string                `json:"type"`
	Balance      decimal.Decimal       `json:"balance"`
	IsReceivable bool                  `json:"is_receivable"`
	IsPayable    bool                  `json:"is_payable"`
	ReturnCount  int                   `json:"return_count"`
	Ledger       []LedgerEntryResponse `json:"ledger,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// BlacklistEntryResponse represents a blacklist entry in API responses
type BlacklistEntryResponse struct {
	Phone     string    `json:"phone"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PersonListFilter represents filter options for the people list
type PersonListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=customer vendor"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToLedgerEntryResponse converts a domain LedgerEntry to its response form
func ToLedgerEntryResponse(e *khata.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:          e.ID,
		EntryDate:   e.EntryDate,
		Description: e.Description,
		Debit:       e.Debit,
		Credit:      e.Credit,
		Balance:     e.Balance,
		CreatedAt:   e.CreatedAt,
	}
}

// ToPersonResponse converts a domain Person to PersonResponse. The ledger
// is included when withLedger is set.
func ToPersonResponse(p *khata.Person, withLedger bool) PersonResponse {
	response := PersonResponse{
		ID:           p.ID,
		Name:         p.Name,
		Phone:        p.Phone,
		Type:         string(p.Type),
		Balance:      p.Balance,
		IsReceivable: p.IsReceivable(),
		IsPayable:    p.IsPayable(),
		ReturnCount:  p.ReturnCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if withLedger {
		response.Ledger = make([]LedgerEntryResponse, 0, len(p.Ledger))
		for i := range p.Ledger {
			response.Ledger = append(response.Ledger, ToLedgerEntryResponse(&p.Ledger[i]))
		}
	}
	return response
}
