package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/khata"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPersonRepository implements khata.PersonRepository using GORM
type GormPersonRepository struct {
	db *gorm.DB
}

// NewGormPersonRepository creates a new GormPersonRepository
func NewGormPersonRepository(db *gorm.DB) *GormPersonRepository {
	return &GormPersonRepository{db: db}
}

// FindByID finds a person by ID with the ledger in posting order
func (r *GormPersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*khata.Person, error) {
	var person khata.Person
	if err := r.db.WithContext(ctx).
		Preload("Ledger", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&person, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &person, nil
}

// FindByPhone finds a person by phone number
func (r *GormPersonRepository) FindByPhone(ctx context.Context, phone string) (*khata.Person, error) {
	var person khata.Person
	if err := r.db.WithContext(ctx).
		Preload("Ledger", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&person, "phone = ?", phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &person, nil
}

// FindAll finds people with filtering. Search matches name and phone.
func (r *GormPersonRepository) FindAll(ctx context.Context, filter shared.Filter) ([]khata.Person, error) {
	var people []khata.Person
	query := r.filteredQuery(ctx, filter)
	if err := applyFilter(query, filter, personSortFields).Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

// Save creates or updates a person. Ledger entries are append-only and go
// through AppendLedgerEntry, never through Save.
func (r *GormPersonRepository) Save(ctx context.Context, person *khata.Person) error {
	return r.db.WithContext(ctx).Omit("Ledger").Save(person).Error
}

// AppendLedgerEntry posts a ledger entry. The balance update is a single
// atomic read-modify-write, so concurrent posts against the same person
// serialize on the row and the running balance stays consistent.
func (r *GormPersonRepository) AppendLedgerEntry(ctx context.Context, personID uuid.UUID, entryDate time.Time, description string, debit, credit decimal.Decimal) (*khata.LedgerEntry, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Ledger entry description cannot be empty")
	}
	if debit.IsNegative() || credit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Debit and credit cannot be negative")
	}

	var entry *khata.LedgerEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var newBalance decimal.Decimal
		result := tx.Raw(`
			UPDATE people SET balance = balance + ? - ?, updated_at = ?
			WHERE id = ?
			RETURNING balance`, debit, credit, time.Now(), personID).Scan(&newBalance)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		entry = &khata.LedgerEntry{
			ID:          uuid.New(),
			PersonID:    personID,
			EntryDate:   entryDate,
			Description: description,
			Debit:       debit,
			Credit:      credit,
			Balance:     newBalance,
			CreatedAt:   time.Now(),
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// IncrementReturnCount atomically bumps the RTO counter for the person
// matching the phone
func (r *GormPersonRepository) IncrementReturnCount(ctx context.Context, phone string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&khata.Person{}).
		Where("phone = ?", phone).
		Updates(map[string]interface{}{
			"return_count": gorm.Expr("return_count + 1"),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a person and their ledger
func (r *GormPersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("person_id = ?", id).Delete(&khata.LedgerEntry{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&khata.Person{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts people matching the filter
func (r *GormPersonRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filteredQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPersonRepository) filteredQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&khata.Person{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR phone LIKE ?", pattern, pattern)
	}
	if personType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", personType)
	}
	return query
}

// GormBlacklistRepository implements khata.BlacklistRepository using GORM
type GormBlacklistRepository struct {
	db *gorm.DB
}

// NewGormBlacklistRepository creates a new GormBlacklistRepository
func NewGormBlacklistRepository(db *gorm.DB) *GormBlacklistRepository {
	return &GormBlacklistRepository{db: db}
}

// IsBlacklisted reports whether the phone is on the blacklist
func (r *GormBlacklistRepository) IsBlacklisted(ctx context.Context, phone string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&khata.BlacklistEntry{}).
		Where("phone = ?", phone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add puts a phone on the blacklist; re-adding an existing phone is a no-op
func (r *GormBlacklistRepository) Add(ctx context.Context, entry *khata.BlacklistEntry) error {
	exists, err := r.IsBlacklisted(ctx, entry.Phone)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// Remove takes a phone off the blacklist
func (r *GormBlacklistRepository) Remove(ctx context.Context, phone string) error {
	result := r.db.WithContext(ctx).Delete(&khata.BlacklistEntry{}, "phone = ?", phone)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindAll lists all blacklist entries, newest first
func (r *GormBlacklistRepository) FindAll(ctx context.Context) ([]khata.BlacklistEntry, error) {
	var entries []khata.BlacklistEntry
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
