package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	khataapp "github.com/hisaabos/backend/internal/application/khata"
)

// PersonHandler handles khata (customer/vendor ledger) API endpoints
type PersonHandler struct {
	BaseHandler
	personService *khataapp.PersonService
}

// NewPersonHandler creates a new PersonHandler
func NewPersonHandler(personService *khataapp.PersonService) *PersonHandler {
	return &PersonHandler{
		personService: personService,
	}
}

// Create opens a khata for a customer or vendor
func (h *PersonHandler) Create(c *gin.Context) {
	var req khataapp.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	person, err := h.personService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, person)
}

// GetByID retrieves a person with their full ledger
func (h *PersonHandler) GetByID(c *gin.Context) {
	personID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid person ID format")
		return
	}

	person, err := h.personService.GetByID(c.Request.Context(), personID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, person)
}

// GetByPhone retrieves a person by phone number with their full ledger
func (h *PersonHandler) GetByPhone(c *gin.Context) {
	phone := c.Param("phone")
	if phone == "" {
		h.BadRequest(c, "Phone number is required")
		return
	}

	person, err := h.personService.GetByPhone(c.Request.Context(), phone)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, person)
}

// Update applies a partial update to a person
func (h *PersonHandler) Update(c *gin.Context) {
	personID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid person ID format")
		return
	}

	var req khataapp.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	person, err := h.personService.Update(c.Request.Context(), personID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, person)
}

// Delete removes a person and their ledger
func (h *PersonHandler) Delete(c *gin.Context) {
	personID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid person ID format")
		return
	}

	if err := h.personService.Delete(c.Request.Context(), personID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// List retrieves people with filtering and pagination
func (h *PersonHandler) List(c *gin.Context) {
	var filter khataapp.PersonListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.personService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// PostLedgerEntry appends a debit/credit entry to a person's ledger
func (h *PersonHandler) PostLedgerEntry(c *gin.Context) {
	personID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid person ID format")
		return
	}

	var req khataapp.PostLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.personService.PostLedgerEntry(c.Request.Context(), personID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// Blacklist adds a phone number to the blacklist
func (h *PersonHandler) Blacklist(c *gin.Context) {
	var req khataapp.BlacklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.personService.Blacklist(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// Unblacklist removes a phone number from the blacklist
func (h *PersonHandler) Unblacklist(c *gin.Context) {
	phone := c.Param("phone")
	if phone == "" {
		h.BadRequest(c, "Phone number is required")
		return
	}

	if err := h.personService.Unblacklist(c.Request.Context(), phone); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListBlacklist retrieves all blacklisted phone numbers
func (h *PersonHandler) ListBlacklist(c *gin.Context) {
	entries, err := h.personService.ListBlacklist(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}
