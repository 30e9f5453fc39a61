package models

import (
	"github.com/google/uuid"
)

// SubjectKind tells which identity registry a subject lives in.
type SubjectKind string

const (
	SubjectBarber SubjectKind = "barber"
	SubjectStaff  SubjectKind = "staff"
)

// Subject is the person clocking in: a barber or a non-barber staff user, never both.
type Subject struct {
	Kind SubjectKind
	ID   uuid.UUID
}

func BarberSubject(id uuid.UUID) Subject {
	return Subject{Kind: SubjectBarber, ID: id}
}

func StaffSubject(id uuid.UUID) Subject {
	return Subject{Kind: SubjectStaff, ID: id}
}

// SubjectFromIDs builds a subject from the wire pair barber_id / user_id.
// The barber id takes precedence when both are present. ok is false when neither is set.
func SubjectFromIDs(barberID, userID *uuid.UUID) (subject Subject, ok bool) {
	switch {
	case barberID != nil && *barberID != uuid.Nil:
		return BarberSubject(*barberID), true
	case userID != nil && *userID != uuid.Nil:
		return StaffSubject(*userID), true
	default:
		return Subject{}, false
	}
}

func (s Subject) IsBarber() bool {
	return s.Kind == SubjectBarber
}

// BarberID returns the id as a barber reference, nil for staff subjects.
func (s Subject) BarberID() *uuid.UUID {
	if s.Kind != SubjectBarber {
		return nil
	}
	id := s.ID
	return &id
}

// UserID returns the id as a staff user reference, nil for barber subjects.
func (s Subject) UserID() *uuid.UUID {
	if s.Kind != SubjectStaff {
		return nil
	}
	id := s.ID
	return &id
}

// String is used as the lock key and in log fields, e.g. "barber:0d6c...".
func (s Subject) String() string {
	return string(s.Kind) + ":" + s.ID.String()
}
