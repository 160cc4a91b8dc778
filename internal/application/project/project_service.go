package project

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/finance"
	"github.com/hisaabos/backend/internal/domain/project"
	"github.com/hisaabos/backend/internal/domain/sales"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProjectService handles project CRUD and on-demand P&L
type ProjectService struct {
	projectRepo project.Repository
	orderRepo   sales.OrderRepository
	expenseRepo finance.ExpenseRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo project.Repository,
	orderRepo sales.OrderRepository,
	expenseRepo finance.ExpenseRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		orderRepo:   orderRepo,
		expenseRepo: expenseRepo,
	}
}

// Create opens a new project
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	proj, err := project.NewProject(req.Name, req.ClientName, req.StartDate)
	if err != nil {
		return nil, err
	}

	if req.Budget != nil {
		if err := proj.SetBudget(req.Budget); err != nil {
			return nil, err
		}
	}

	if err := s.projectRepo.Save(ctx, proj); err != nil {
		return nil, err
	}

	response := ToProjectResponse(proj)
	return &response, nil
}

// GetByID retrieves a project by ID
func (s *ProjectService) GetByID(ctx context.Context, projectID uuid.UUID) (*ProjectResponse, error) {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	response := ToProjectResponse(proj)
	return &response, nil
}

// Update applies a partial update to a project
func (s *ProjectService) Update(ctx context.Context, projectID uuid.UUID, req UpdateProjectRequest) (*ProjectResponse, error) {
	proj, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := proj.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ClientName != nil {
		proj.SetClientName(*req.ClientName)
	}
	if req.Status != nil {
		if err := proj.ChangeStatus(project.ProjectStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Budget != nil {
		if err := proj.SetBudget(req.Budget); err != nil {
			return nil, err
		}
	}

	if err := s.projectRepo.Save(ctx, proj); err != nil {
		return nil, err
	}

	response := ToProjectResponse(proj)
	return &response, nil
}

// Delete removes a project. Orders and costs tagged with it keep their tag;
// their P&L view simply no longer resolves.
func (s *ProjectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	return s.projectRepo.Delete(ctx, projectID)
}

// List retrieves projects with filtering
func (s *ProjectService) List(ctx context.Context, filter ProjectListFilter) ([]ProjectResponse, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
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
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	projects, err := s.projectRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, ToProjectResponse(&projects[i]))
	}
	return responses, nil
}

// ProfitLoss computes the project's P&L on demand: income over realized
// orders tagged with the project, less tagged expenses. An unknown
// project id yields all zeros rather than an error.
func (s *ProjectService) ProfitLoss(ctx context.Context, projectID uuid.UUID) (*ProfitLossResponse, error) {
	response := &ProfitLossResponse{
		ProjectID: projectID,
		Income:    decimal.Zero,
		Expenses:  decimal.Zero,
		Profit:    decimal.Zero,
	}

	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return response, nil
		}
		return nil, err
	}

	orders, err := s.orderRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].Status.IsRealized() {
			response.Income = response.Income.Add(orders[i].Total)
			response.Orders++
		}
	}

	expenses, err := s.expenseRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		response.Expenses = response.Expenses.Add(expenses[i].Amount)
	}

	response.Profit = response.Income.Sub(response.Expenses)
	return response, nil
}
