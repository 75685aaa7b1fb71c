package services

import (
	"strings"

	"gymdesk/internal/database"
	"gymdesk/internal/database/clients"
	"gymdesk/internal/entities"
	"gymdesk/internal/history"
)

// ClientService is a thin façade over the client DAO that validates
// required fields and records every mutation in the operation log.
type ClientService struct {
	repo    *clients.Repository
	history *history.Service
}

func NewClientService(repo *clients.Repository, hist *history.Service) *ClientService {
	return &ClientService{repo: repo, history: hist}
}

func (s *ClientService) All() ([]entities.Client, error) {
	return s.repo.All()
}

func (s *ClientService) ByID(id int64) (*entities.Client, error) {
	return s.repo.ByID(id)
}

// Search matches the keyword against first/last name, email and phone.
func (s *ClientService) Search(keyword string) ([]entities.Client, error) {
	return s.repo.Search(keyword)
}

func (s *ClientService) Create(c *entities.Client) (int64, error) {
	if err := validateClient(c); err != nil {
		return 0, err
	}
	guard := s.history.Begin(entities.OpInsert, "clients", 0, nil)
	defer guard.Finish()

	id, err := s.repo.Insert(c)
	if err != nil {
		return 0, err
	}
	guard.Commit(id, c, "created client "+c.FullName())
	return id, nil
}

// Update rewrites a client. The id is immutable and the registration date
// never regresses: an empty or earlier incoming date keeps the stored one.
func (s *ClientService) Update(c *entities.Client) error {
	if err := validateClient(c); err != nil {
		return err
	}
	existing, err := s.repo.ByID(c.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return database.ErrNotFound
	}
	if c.RegistrationDate == "" || c.RegistrationDate < existing.RegistrationDate {
		c.RegistrationDate = existing.RegistrationDate
	}

	guard := s.history.Begin(entities.OpUpdate, "clients", c.ID, existing)
	defer guard.Finish()

	if err := s.repo.Update(c); err != nil {
		return err
	}
	guard.Commit(c.ID, c, "updated client "+c.FullName())
	return nil
}

func (s *ClientService) Delete(id int64) error {
	existing, err := s.repo.ByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return database.ErrNotFound
	}

	guard := s.history.Begin(entities.OpDelete, "clients", id, existing)
	defer guard.Finish()

	if err := s.repo.Delete(id); err != nil {
		return err
	}
	guard.Commit(id, nil, "deleted client "+existing.FullName())
	return nil
}

func validateClient(c *entities.Client) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return invalid("first_name", "required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return invalid("last_name", "required")
	}
	return nil
}
