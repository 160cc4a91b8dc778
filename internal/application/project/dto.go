package project

import (
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/project"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest represents a request to open a project
type CreateProjectRequest struct {
	Name       string           `json:"name" binding:"required,min=1,max=200"`
	ClientName string           `json:"client_name" binding:"max=200"`
	StartDate  time.Time        `json:"start_date"`
	Budget     *decimal.Decimal `json:"budget"`
}

// UpdateProjectRequest represents a partial update to a project
type UpdateProjectRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=200"`
	ClientName *string          `json:"client_name" binding:"omitempty,max=200"`
	Status     *string          `json:"status" binding:"omitempty,oneof=active completed on-hold"`
	Budget     *decimal.Decimal `json:"budget"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	ClientName string           `json:"client_name,omitempty"`
	Status     string           `json:"status"`
	StartDate  time.Time        `json:"start_date"`
	EndDate    *time.Time       `json:"end_date,omitempty"`
	Budget     *decimal.Decimal `json:"budget,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// ProjectListFilter represents filter options for the project list
type ProjectListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active completed on-hold"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProfitLossResponse is a project's on-demand P&L. Income counts realized
// orders only; profit is income less tagged expenses. An unknown project
// id yields all zeros.
type ProfitLossResponse struct {
	ProjectID uuid.UUID       `json:"project_id"`
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
	Profit    decimal.Decimal `json:"profit"`
	Orders    int             `json:"orders"`
}

// ToProjectResponse converts a domain Project to ProjectResponse
func ToProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:         p.ID,
		Name:       p.Name,
		ClientName: p.ClientName,
		Status:     string(p.Status),
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		Budget:     p.Budget,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
