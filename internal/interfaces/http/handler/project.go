package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	projectapp "github.com/hisaabos/backend/internal/application/project"
)

// ProjectHandler handles project and P&L API endpoints
type ProjectHandler struct {
	BaseHandler
	projectService *projectapp.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *projectapp.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Create opens a new project
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectapp.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	proj, err := h.projectService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, proj)
}

// GetByID retrieves a project by ID
func (h *ProjectHandler) GetByID(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID format")
		return
	}

	proj, err := h.projectService.GetByID(c.Request.Context(), projectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, proj)
}

// Update applies a partial update to a project
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID format")
		return
	}

	var req projectapp.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	proj, err := h.projectService.Update(c.Request.Context(), projectID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, proj)
}

// Delete removes a project
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID format")
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), projectID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// List retrieves projects with filtering
func (h *ProjectHandler) List(c *gin.Context) {
	var filter projectapp.ProjectListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	projects, err := h.projectService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, projects)
}

// ProfitLoss computes the project's P&L on demand
func (h *ProjectHandler) ProfitLoss(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID format")
		return
	}

	pnl, err := h.projectService.ProfitLoss(c.Request.Context(), projectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, pnl)
}
