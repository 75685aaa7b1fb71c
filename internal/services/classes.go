package services

import (
	"fmt"
	"strings"

	"gymdesk/internal/database"
	"gymdesk/internal/database/classes"
	"gymdesk/internal/database/reservations"
	"gymdesk/internal/entities"
	"gymdesk/internal/history"
)

// ClassService composes the class and reservation DAOs with the membership
// service. Reservation eligibility is membership validity; capacity is
// enforced at reservation time, so a full class rejects further bookings.
type ClassService struct {
	classes      *classes.Repository
	reservations *reservations.Repository
	memberships  *MembershipService
	history      *history.Service
}

func NewClassService(classRepo *classes.Repository, resRepo *reservations.Repository, memberships *MembershipService, hist *history.Service) *ClassService {
	return &ClassService{
		classes:      classRepo,
		reservations: resRepo,
		memberships:  memberships,
		history:      hist,
	}
}

func (s *ClassService) Classes() ([]entities.GymClass, error) {
	return s.classes.All()
}

func (s *ClassService) ClassByID(id int64) (*entities.GymClass, error) {
	return s.classes.ByID(id)
}

func (s *ClassService) ClassesOnDate(date string) ([]entities.GymClass, error) {
	return s.classes.OnDate(date)
}

func (s *ClassService) CreateClass(gc *entities.GymClass) (int64, error) {
	if err := validateClass(gc); err != nil {
		return 0, err
	}
	guard := s.history.Begin(entities.OpInsert, "gym_classes", 0, nil)
	defer guard.Finish()

	id, err := s.classes.Insert(gc)
	if err != nil {
		return 0, err
	}
	guard.Commit(id, gc, "created class "+gc.Name)
	return id, nil
}

func (s *ClassService) UpdateClass(gc *entities.GymClass) error {
	if err := validateClass(gc); err != nil {
		return err
	}
	existing, err := s.classes.ByID(gc.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return database.ErrNotFound
	}

	guard := s.history.Begin(entities.OpUpdate, "gym_classes", gc.ID, existing)
	defer guard.Finish()

	if err := s.classes.Update(gc); err != nil {
		return err
	}
	guard.Commit(gc.ID, gc, "updated class "+gc.Name)
	return nil
}

func (s *ClassService) DeleteClass(id int64) error {
	existing, err := s.classes.ByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return database.ErrNotFound
	}

	guard := s.history.Begin(entities.OpDelete, "gym_classes", id, existing)
	defer guard.Finish()

	if err := s.classes.Delete(id); err != nil {
		return err
	}
	guard.Commit(id, nil, "deleted class "+existing.Name)
	return nil
}

// AvailableSeats returns max participants minus confirmed reservations,
// never below zero.
func (s *ClassService) AvailableSeats(classID int64) (int, error) {
	gc, err := s.classes.ByID(classID)
	if err != nil {
		return 0, err
	}
	if gc == nil {
		return 0, database.ErrNotFound
	}
	taken, err := s.reservations.CountConfirmed(classID)
	if err != nil {
		return 0, err
	}
	seats := gc.MaxParticipants - taken
	if seats < 0 {
		seats = 0
	}
	return seats, nil
}

// CanReserve reports whether a client is eligible to book: eligibility is
// holding a membership valid today, nothing class-specific.
func (s *ClassService) CanReserve(clientID int64) (bool, error) {
	return s.memberships.HasActive(clientID)
}

// Reserve books a confirmed seat. Rejects clients without an active
// membership and classes with no seats left.
func (s *ClassService) Reserve(clientID, classID int64) (*entities.Reservation, error) {
	eligible, err := s.CanReserve(clientID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrNoActiveMembership
	}

	seats, err := s.AvailableSeats(classID)
	if err != nil {
		return nil, err
	}
	if seats <= 0 {
		return nil, ErrClassFull
	}

	res := &entities.Reservation{ClientID: clientID, ClassID: classID}

	guard := s.history.Begin(entities.OpInsert, "reservations", 0, nil)
	defer guard.Finish()

	id, err := s.reservations.Insert(res)
	if err != nil {
		return nil, err
	}
	guard.Commit(id, res, fmt.Sprintf("reserved class %d for client %d", classID, clientID))
	return res, nil
}

// CancelReservation flips the status to cancelled. The row stays in place
// so the booking history survives.
func (s *ClassService) CancelReservation(id int64) error {
	res, err := s.reservations.ByID(id)
	if err != nil {
		return err
	}
	if res == nil {
		return database.ErrNotFound
	}
	if res.Status == entities.ReservationCancelled {
		return ErrAlreadyCancelled
	}

	before := *res
	res.Status = entities.ReservationCancelled

	guard := s.history.Begin(entities.OpUpdate, "reservations", id, before)
	defer guard.Finish()

	if err := s.reservations.Update(res); err != nil {
		return err
	}
	guard.Commit(id, res, fmt.Sprintf("cancelled reservation %d", id))
	return nil
}

func (s *ClassService) Reservations() ([]entities.Reservation, error) {
	return s.reservations.All()
}

func (s *ClassService) ReservationsForClient(clientID int64) ([]entities.Reservation, error) {
	return s.reservations.ForClient(clientID)
}

func (s *ClassService) ReservationsForClass(classID int64) ([]entities.Reservation, error) {
	return s.reservations.ForClass(classID)
}

func validateClass(gc *entities.GymClass) error {
	if strings.TrimSpace(gc.Name) == "" {
		return invalid("name", "required")
	}
	if strings.TrimSpace(gc.Trainer) == "" {
		return invalid("trainer", "required")
	}
	if gc.MaxParticipants <= 0 {
		return invalid("max_participants", "must be positive")
	}
	return nil
}
