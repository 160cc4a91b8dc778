package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/finance"
	"github.com/hisaabos/backend/internal/domain/shared"
)

// FinanceService records operating expenses and ad spend
type FinanceService struct {
	expenseRepo finance.ExpenseRepository
	adSpendRepo finance.AdSpendRepository
}

// NewFinanceService creates a new FinanceService
func NewFinanceService(expenseRepo finance.ExpenseRepository, adSpendRepo finance.AdSpendRepository) *FinanceService {
	return &FinanceService{
		expenseRepo: expenseRepo,
		adSpendRepo: adSpendRepo,
	}
}

// CreateExpense records an operating cost
func (s *FinanceService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	expenseDate := req.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}

	expense, err := finance.NewExpense(expenseDate, finance.ExpenseCategory(req.Category), req.Description, req.Amount)
	if err != nil {
		return nil, err
	}

	if req.ProjectID != nil {
		expense.TagProject(*req.ProjectID)
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// ListExpenses retrieves expenses, newest expense date first by default
func (s *FinanceService) ListExpenses(ctx context.Context, filter ListFilter) ([]ExpenseResponse, error) {
	expenses, err := s.expenseRepo.FindAll(ctx, toDomainFilter(filter, "expense_date"))
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, ToExpenseResponse(&expenses[i]))
	}
	return responses, nil
}

// DeleteExpense removes an expense
func (s *FinanceService) DeleteExpense(ctx context.Context, expenseID uuid.UUID) error {
	return s.expenseRepo.Delete(ctx, expenseID)
}

// CreateAdSpend records marketing spend
func (s *FinanceService) CreateAdSpend(ctx context.Context, req CreateAdSpendRequest) (*AdSpendResponse, error) {
	spendDate := req.SpendDate
	if spendDate.IsZero() {
		spendDate = time.Now()
	}

	spend, err := finance.NewAdSpend(spendDate, finance.AdPlatform(req.Platform), req.Notes, req.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.adSpendRepo.Save(ctx, spend); err != nil {
		return nil, err
	}

	response := ToAdSpendResponse(spend)
	return &response, nil
}

// ListAdSpends retrieves ad spend records
func (s *FinanceService) ListAdSpends(ctx context.Context, filter ListFilter) ([]AdSpendResponse, error) {
	spends, err := s.adSpendRepo.FindAll(ctx, toDomainFilter(filter, "spend_date"))
	if err != nil {
		return nil, err
	}

	responses := make([]AdSpendResponse, 0, len(spends))
	for i := range spends {
		responses = append(responses, ToAdSpendResponse(&spends[i]))
	}
	return responses, nil
}

// DeleteAdSpend removes an ad spend record
func (s *FinanceService) DeleteAdSpend(ctx context.Context, spendID uuid.UUID) error {
	return s.adSpendRepo.Delete(ctx, spendID)
}

// TotalAdSpend sums ad spend over an optional date window
func (s *FinanceService) TotalAdSpend(ctx context.Context, from, to *time.Time) (*TotalResponse, error) {
	dateRange := finance.DateRange{}
	if from != nil {
		dateRange.From = *from
	}
	if to != nil {
		dateRange.To = *to
	}

	total, err := s.adSpendRepo.SumByRange(ctx, dateRange)
	if err != nil {
		return nil, err
	}

	return &TotalResponse{From: from, To: to, Total: total}, nil
}

func toDomainFilter(filter ListFilter, defaultOrderBy string) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = defaultOrderBy
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	return domainFilter
}
