package project

import (
	"time"

	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProjectStatus marks where a venture is in its life
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
)

// IsValid checks if the project status is recognized
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}

// Project groups orders and expenses under one product launch or campaign
// so profitability can be read per venture rather than only for the
// business as a whole. P&L is always computed on demand, never stored.
type Project struct {
	shared.BaseAggregateRoot
	Name       string
	ClientName string
	Status     ProjectStatus
	StartDate  time.Time
	EndDate    *time.Time
	Budget     *decimal.Decimal `gorm:"type:decimal(14,2)"`
}

var _ shared.AggregateRoot = (*Project)(nil)

// TableName returns the database table name
func (Project) TableName() string {
	return "projects"
}

// NewProject creates an active project
func NewProject(name, clientName string, startDate time.Time) (*Project, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if startDate.IsZero() {
		startDate = time.Now()
	}

	return &Project{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ClientName:        clientName,
		Status:            ProjectStatusActive,
		StartDate:         startDate,
	}, nil
}

// Rename changes the project name
func (p *Project) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

// SetClientName updates the client the project is run for
func (p *Project) SetClientName(clientName string) {
	p.ClientName = clientName
	p.UpdatedAt = time.Now()
}

// SetBudget sets the planned spend ceiling; nil clears it
func (p *Project) SetBudget(budget *decimal.Decimal) error {
	if budget != nil && budget.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}
	p.Budget = budget
	p.UpdatedAt = time.Now()
	return nil
}

// ChangeStatus moves the project to the target status. Completing a project
// stamps the end date if none was set.
func (p *Project) ChangeStatus(status ProjectStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown project status")
	}
	p.Status = status
	if status == ProjectStatusCompleted && p.EndDate == nil {
		now := time.Now()
		p.EndDate = &now
	}
	p.UpdatedAt = time.Now()
	return nil
}

// IsActive returns true while the project accepts new orders and costs
func (p *Project) IsActive() bool {
	return p.Status == ProjectStatusActive
}
