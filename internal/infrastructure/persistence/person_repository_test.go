package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/hisaabos/backend/internal/domain/khata"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newKhataTestDB opens an in-memory sqlite database. A single connection
// keeps the memory database alive for the whole test.
func newKhataTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&khata.Person{}, &khata.LedgerEntry{}, &khata.BlacklistEntry{}))
	return db
}

func newTestPerson(t *testing.T, repo *GormPersonRepository, phone string) *khata.Person {
	t.Helper()
	person, err := khata.NewPerson("Ayesha Khan", phone, khata.PersonTypeCustomer)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), person))
	return person
}

func TestGormPersonRepository_AppendLedgerEntry(t *testing.T) {
	db := newKhataTestDB(t)
	repo := NewGormPersonRepository(db)
	ctx := context.Background()

	person := newTestPerson(t, repo, "03001234567")
	today := time.Now()

	entry, err := repo.AppendLedgerEntry(ctx, person.ID, today, "Order INV-2025-001 delivered", decimal.NewFromInt(2597), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2597).Equal(entry.Balance))

	entry, err = repo.AppendLedgerEntry(ctx, person.ID, today, "Cash received from courier", decimal.Zero, decimal.NewFromInt(2597))
	require.NoError(t, err)
	assert.True(t, entry.Balance.IsZero(), "running balance returns to zero after full settlement")

	loaded, err := repo.FindByID(ctx, person.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Balance.IsZero())
	require.Len(t, loaded.Ledger, 2)
	assert.True(t, decimal.NewFromInt(2597).Equal(loaded.Ledger[0].Balance), "ledger loads in posting order")
	assert.True(t, loaded.Ledger[1].Balance.IsZero())
}

func TestGormPersonRepository_AppendLedgerEntry_Validation(t *testing.T) {
	db := newKhataTestDB(t)
	repo := NewGormPersonRepository(db)
	ctx := context.Background()

	person := newTestPerson(t, repo, "03001234567")

	_, err := repo.AppendLedgerEntry(ctx, person.ID, time.Now(), "", decimal.NewFromInt(100), decimal.Zero)
	assert.Error(t, err)

	_, err = repo.AppendLedgerEntry(ctx, person.ID, time.Now(), "bad", decimal.NewFromInt(-1), decimal.Zero)
	assert.Error(t, err)
}

func TestGormPersonRepository_IncrementReturnCount(t *testing.T) {
	db := newKhataTestDB(t)
	repo := NewGormPersonRepository(db)
	ctx := context.Background()

	person := newTestPerson(t, repo, "03001234567")

	updated, err := repo.IncrementReturnCount(ctx, "03001234567")
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = repo.IncrementReturnCount(ctx, "03001234567")
	require.NoError(t, err)
	assert.True(t, updated)

	loaded, err := repo.FindByID(ctx, person.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.ReturnCount)

	updated, err = repo.IncrementReturnCount(ctx, "03119999999")
	require.NoError(t, err)
	assert.False(t, updated, "unknown phone is not an error")
}

func TestGormPersonRepository_FindByPhone(t *testing.T) {
	db := newKhataTestDB(t)
	repo := NewGormPersonRepository(db)
	ctx := context.Background()

	newTestPerson(t, repo, "03001234567")

	found, err := repo.FindByPhone(ctx, "03001234567")
	require.NoError(t, err)
	assert.Equal(t, "Ayesha Khan", found.Name)

	_, err = repo.FindByPhone(ctx, "03110000000")
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormBlacklistRepository(t *testing.T) {
	db := newKhataTestDB(t)
	repo := NewGormBlacklistRepository(db)
	ctx := context.Background()

	listed, err := repo.IsBlacklisted(ctx, "03001234567")
	require.NoError(t, err)
	assert.False(t, listed)

	entry, err := khata.NewBlacklistEntry("03001234567", "Repeated refusals at doorstep")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, entry))

	dup, err := khata.NewBlacklistEntry("03001234567", "again")
	require.NoError(t, err)
	assert.NoError(t, repo.Add(ctx, dup), "re-adding is a no-op")

	listed, err = repo.IsBlacklisted(ctx, "03001234567")
	require.NoError(t, err)
	assert.True(t, listed)

	entries, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, repo.Remove(ctx, "03001234567"))
	assert.Equal(t, shared.ErrNotFound, repo.Remove(ctx, "03001234567"))
}
