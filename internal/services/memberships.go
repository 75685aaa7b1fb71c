package services

import (
	"fmt"
	"math"

	"gymdesk/internal/database"
	"gymdesk/internal/database/memberships"
	"gymdesk/internal/entities"
	"gymdesk/internal/history"
)

// Fixed durations of the named membership factories, in days.
const (
	MonthlyDays   = 30
	QuarterlyDays = 90
	YearlyDays    = 365
)

// PriceTable carries the configured base prices per duration and the
// student discount percentage.
type PriceTable struct {
	Monthly                float64
	Quarterly              float64
	Yearly                 float64
	StudentDiscountPercent float64
}

// MembershipService owns membership pricing and duration rules. New
// memberships are only created through the named-duration factories, which
// compute the end date and price; direct updates remain possible for edits.
type MembershipService struct {
	repo    *memberships.Repository
	history *history.Service
	prices  PriceTable
}

func NewMembershipService(repo *memberships.Repository, hist *history.Service, prices PriceTable) *MembershipService {
	return &MembershipService{repo: repo, history: hist, prices: prices}
}

func (s *MembershipService) All() ([]entities.Membership, error) {
	return s.repo.All()
}

func (s *MembershipService) ByID(id int64) (*entities.Membership, error) {
	return s.repo.ByID(id)
}

func (s *MembershipService) ForClient(clientID int64) ([]entities.Membership, error) {
	return s.repo.ForClient(clientID)
}

// HasActive reports whether the client holds a membership valid today.
func (s *MembershipService) HasActive(clientID int64) (bool, error) {
	return s.repo.HasActive(clientID, entities.Today())
}

// CreateMonthly creates a 30-day membership starting on the given day
// (today when empty), priced from the configured table.
func (s *MembershipService) CreateMonthly(clientID int64, start string, student bool) (*entities.Membership, error) {
	return s.create(clientID, start, student, MonthlyDays, s.prices.Monthly, "monthly")
}

// CreateQuarterly creates a 90-day membership.
func (s *MembershipService) CreateQuarterly(clientID int64, start string, student bool) (*entities.Membership, error) {
	return s.create(clientID, start, student, QuarterlyDays, s.prices.Quarterly, "quarterly")
}

// CreateYearly creates a 365-day membership.
func (s *MembershipService) CreateYearly(clientID int64, start string, student bool) (*entities.Membership, error) {
	return s.create(clientID, start, student, YearlyDays, s.prices.Yearly, "yearly")
}

func (s *MembershipService) create(clientID int64, start string, student bool, days int, basePrice float64, duration string) (*entities.Membership, error) {
	if clientID <= 0 {
		return nil, invalid("client_id", "must be positive")
	}
	if start == "" {
		start = entities.Today()
	}
	end, err := entities.AddDays(start, days)
	if err != nil {
		return nil, invalid("start_date", "must be YYYY-MM-DD")
	}

	audience := "normal"
	price := basePrice
	if student {
		audience = "student"
		price = basePrice * (100 - s.prices.StudentDiscountPercent) / 100
	}
	price = math.Round(price*100) / 100
	if price <= 0 {
		return nil, invalid("price", "must be positive")
	}

	m := &entities.Membership{
		ClientID:  clientID,
		Type:      entities.MembershipType(audience + "_" + duration),
		StartDate: start,
		EndDate:   end,
		Price:     price,
		IsActive:  true,
	}

	guard := s.history.Begin(entities.OpInsert, "memberships", 0, nil)
	defer guard.Finish()

	id, err := s.repo.Insert(m)
	if err != nil {
		return nil, err
	}
	guard.Commit(id, m, fmt.Sprintf("created %s membership for client %d", m.Type, clientID))
	return m, nil
}

// Update edits a membership directly, bypassing the factories. The caller
// owns the field values; only structural rules are enforced.
func (s *MembershipService) Update(m *entities.Membership) error {
	if err := validateMembership(m); err != nil {
		return err
	}
	existing, err := s.repo.ByID(m.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return database.ErrNotFound
	}

	guard := s.history.Begin(entities.OpUpdate, "memberships", m.ID, existing)
	defer guard.Finish()

	if err := s.repo.Update(m); err != nil {
		return err
	}
	guard.Commit(m.ID, m, fmt.Sprintf("updated membership %d", m.ID))
	return nil
}

func (s *MembershipService) Delete(id int64) error {
	existing, err := s.repo.ByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return database.ErrNotFound
	}

	guard := s.history.Begin(entities.OpDelete, "memberships", id, existing)
	defer guard.Finish()

	if err := s.repo.Delete(id); err != nil {
		return err
	}
	guard.Commit(id, nil, fmt.Sprintf("deleted membership %d", id))
	return nil
}

func validateMembership(m *entities.Membership) error {
	if m.ClientID <= 0 {
		return invalid("client_id", "must be positive")
	}
	if !entities.ValidMembershipType(m.Type) {
		return invalid("type", "unknown membership type")
	}
	if m.EndDate < m.StartDate {
		return invalid("end_date", "must not precede start date")
	}
	if m.Price <= 0 {
		return invalid("price", "must be positive")
	}
	return nil
}
