package khata

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/khata"
	"github.com/hisaabos/backend/internal/domain/shared"
)

// PersonService handles khata operations: people, their ledgers and the
// phone blacklist.
type PersonService struct {
	personRepo    khata.PersonRepository
	blacklistRepo khata.BlacklistRepository
}

// NewPersonService creates a new PersonService
func NewPersonService(personRepo khata.PersonRepository, blacklistRepo khata.BlacklistRepository) *PersonService {
	return &PersonService{
		personRepo:    personRepo,
		blacklistRepo: blacklistRepo,
	}
}

// Create opens a khata for a new person. Phone is the natural key, so a
// second khata for the same phone is rejected.
func (s *PersonService) Create(ctx context.Context, req CreatePersonRequest) (*PersonResponse, error) {
	_, err := s.personRepo.FindByPhone(ctx, req.Phone)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A khata already exists for this phone number")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	person, err := khata.NewPerson(req.Name, req.Phone, khata.PersonType(req.Type))
	if err != nil {
		return nil, err
	}

	if err := s.personRepo.Save(ctx, person); err != nil {
		return nil, err
	}

	response := ToPersonResponse(person, false)
	return &response, nil
}

// GetByID retrieves a person with their full ledger
func (s *PersonService) GetByID(ctx context.Context, personID uuid.UUID) (*PersonResponse, error) {
	person, err := s.personRepo.FindByID(ctx, personID)
	if err != nil {
		return nil, err
	}

	response := ToPersonResponse(person, true)
	return &response, nil
}

// GetByPhone retrieves a person by phone with their full ledger
func (s *PersonService) GetByPhone(ctx context.Context, phone string) (*PersonResponse, error) {
	person, err := s.personRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	response := ToPersonResponse(person, true)
	return &response, nil
}

// Update applies a partial update to a person's name and phone
func (s *PersonService) Update(ctx context.Context, personID uuid.UUID, req UpdatePersonRequest) (*PersonResponse, error) {
	person, err := s.personRepo.FindByID(ctx, personID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := person.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Phone != nil && *req.Phone != person.Phone {
		if _, err := s.personRepo.FindByPhone(ctx, *req.Phone); err == nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A khata already exists for this phone number")
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if err := person.ChangePhone(*req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.personRepo.Save(ctx, person); err != nil {
		return nil, err
	}

	response := ToPersonResponse(person, false)
	return &response, nil
}

// Delete removes a person and their ledger
func (s *PersonService) Delete(ctx context.Context, personID uuid.UUID) error {
	return s.personRepo.Delete(ctx, personID)
}

// List retrieves people with filtering and pagination
func (s *PersonService) List(ctx context.Context, filter PersonListFilter) (*shared.Paginated[PersonResponse], error) {
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
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	people, err := s.personRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.personRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]PersonResponse, 0, len(people))
	for i := range people {
		responses = append(responses, ToPersonResponse(&people[i], false))
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// PostLedgerEntry appends an entry to a person's khata and returns the line
// with its computed running balance
func (s *PersonService) PostLedgerEntry(ctx context.Context, personID uuid.UUID, req PostLedgerEntryRequest) (*LedgerEntryResponse, error) {
	entryDate := req.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	entry, err := s.personRepo.AppendLedgerEntry(ctx, personID, entryDate, req.Description, req.Debit, req.Credit)
	if err != nil {
		return nil, err
	}

	response := ToLedgerEntryResponse(entry)
	return &response, nil
}

// Blacklist puts a phone on the blacklist; re-adding is a no-op
func (s *PersonService) Blacklist(ctx context.Context, req BlacklistRequest) (*BlacklistEntryResponse, error) {
	entry, err := khata.NewBlacklistEntry(req.Phone, req.Reason)
	if err != nil {
		return nil, err
	}

	if err := s.blacklistRepo.Add(ctx, entry); err != nil {
		return nil, err
	}

	return &BlacklistEntryResponse{
		Phone:     entry.Phone,
		Reason:    entry.Reason,
		CreatedAt: entry.CreatedAt,
	}, nil
}

// Unblacklist takes a phone off the blacklist
func (s *PersonService) Unblacklist(ctx context.Context, phone string) error {
	return s.blacklistRepo.Remove(ctx, phone)
}

// ListBlacklist lists all blacklisted phones
func (s *PersonService) ListBlacklist(ctx context.Context) ([]BlacklistEntryResponse, error) {
	entries, err := s.blacklistRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]BlacklistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, BlacklistEntryResponse{
			Phone:     entry.Phone,
			Reason:    entry.Reason,
			CreatedAt: entry.CreatedAt,
		})
	}
	return responses, nil
}
