package serviceimpl

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"barbershop-attendance/domain/models"
	"barbershop-attendance/domain/repositories"
	"barbershop-attendance/domain/services"
)

// IdentityResolver checks that a subject and branch exist in the shared registry.
type IdentityResolver struct {
	identityRepo repositories.IdentityRepository
}

func NewIdentityResolver(identityRepo repositories.IdentityRepository) *IdentityResolver {
	return &IdentityResolver{identityRepo: identityRepo}
}

// Resolve fails with BARBER_NOT_FOUND / USER_NOT_FOUND, then BRANCH_NOT_FOUND when branchID is given.
func (r *IdentityResolver) Resolve(ctx context.Context, subject models.Subject, branchID *uuid.UUID) error {
	if subject.IsBarber() {
		barber, err := r.identityRepo.GetBarber(ctx, subject.ID)
		if err != nil {
			return fmt.Errorf("failed to load barber: %w", err)
		}
		if barber == nil {
			return services.ErrBarberNotFound
		}
	} else {
		user, err := r.identityRepo.GetUser(ctx, subject.ID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		if user == nil {
			return services.ErrUserNotFound
		}
	}

	if branchID != nil {
		branch, err := r.identityRepo.GetBranch(ctx, *branchID)
		if err != nil {
			return fmt.Errorf("failed to load branch: %w", err)
		}
		if branch == nil {
			return services.ErrBranchNotFound
		}
	}

	return nil
}

// Person is the display data of a subject.
type Person struct {
	Name   string
	Avatar string
}

// People loads display data for many subjects with one query per registry.
func (r *IdentityResolver) People(ctx context.Context, subjects []models.Subject) (map[models.Subject]Person, error) {
	var barberIDs, userIDs []uuid.UUID
	seen := make(map[models.Subject]bool, len(subjects))
	for _, s := range subjects {
		if seen[s] {
			continue
		}
		seen[s] = true
		if s.IsBarber() {
			barberIDs = append(barberIDs, s.ID)
		} else {
			userIDs = append(userIDs, s.ID)
		}
	}

	people := make(map[models.Subject]Person, len(seen))

	barbers, err := r.identityRepo.GetBarbersByIDs(ctx, barberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load barbers: %w", err)
	}
	for _, b := range barbers {
		people[models.BarberSubject(b.ID)] = Person{Name: b.FullName, Avatar: b.Avatar}
	}

	users, err := r.identityRepo.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	for _, u := range users {
		people[models.StaffSubject(u.ID)] = Person{Name: u.DisplayName(), Avatar: u.Avatar}
	}

	return people, nil
}

func (r *IdentityResolver) ActiveBarbers(ctx context.Context, branchID uuid.UUID) ([]models.Barber, error) {
	barbers, err := r.identityRepo.ListActiveBarbersByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list barbers: %w", err)
	}
	return barbers, nil
}
