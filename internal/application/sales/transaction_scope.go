package sales

import (
	"context"

	"github.com/hisaabos/backend/internal/domain/catalog"
	"github.com/hisaabos/backend/internal/domain/khata"
	"github.com/hisaabos/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to the repositories an
// order write touches. When a function is executed within a transaction
// scope, all repository operations are part of the same database
// transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories involved
// in an order write, all sharing the same underlying transaction.
//
// An order write crosses aggregate boundaries: creating an order
// decrements catalog stock, and marking one returned bumps the khata
// return count and restores stock. Those side effects must not outlive
// a failed order save.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() sales.OrderRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// PersonRepo returns the person repository scoped to the current transaction
	PersonRepo() khata.PersonRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	orderRepo   sales.OrderRepository
	productRepo catalog.ProductRepository
	personRepo  khata.PersonRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo sales.OrderRepository,
	productRepo catalog.ProductRepository,
	personRepo khata.PersonRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		personRepo:  personRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() sales.OrderRepository {
	return s.orderRepo
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// PersonRepo returns the person repository.
func (s *NoOpTransactionScope) PersonRepo() khata.PersonRepository {
	return s.personRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
