package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	"github.com/serviceops/receipts-api/internal/domain/repository"
	"github.com/serviceops/receipts-api/pkg/apperror"
)

// UserService handles user administration
type UserService struct {
	profileRepo repository.ProfileRepository
}

// NewUserService creates a new user service
func NewUserService(profileRepo repository.ProfileRepository) *UserService {
	return &UserService{profileRepo: profileRepo}
}

// ListUsers returns all user profiles
func (s *UserService) ListUsers(ctx context.Context) ([]entity.Profile, error) {
	return s.profileRepo.List(ctx)
}

// RoleChange assigns one user a new role.
type RoleChange struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Role   string    `json:"role" binding:"required"`
}

// RoleChangeOutcome reports how one role change fared.
type RoleChangeOutcome struct {
	UserID  uuid.UUID `json:"user_id"`
	Applied bool      `json:"applied"`
	Reason  string    `json:"reason,omitempty"`
}

// UpdateRoles applies a batch of role changes, reporting each change
// individually so one bad entry does not abort the rest.
func (s *UserService) UpdateRoles(ctx context.Context, changes []RoleChange) ([]RoleChangeOutcome, error) {
	if len(changes) == 0 {
		return nil, apperror.NewBadRequestError("No role changes provided")
	}

	outcomes := make([]RoleChangeOutcome, 0, len(changes))
	for _, change := range changes {
		role := enum.Role(change.Role)
		if !role.IsValid() {
			outcomes = append(outcomes, RoleChangeOutcome{UserID: change.UserID, Reason: "Unknown role"})
			continue
		}
		if err := s.profileRepo.UpdateRole(ctx, change.UserID, role); err != nil {
			outcomes = append(outcomes, RoleChangeOutcome{UserID: change.UserID, Reason: "User not found"})
			continue
		}
		outcomes = append(outcomes, RoleChangeOutcome{UserID: change.UserID, Applied: true})
	}
	return outcomes, nil
}
