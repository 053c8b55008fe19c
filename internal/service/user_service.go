package service

import (
	"context"

	"stayhub/internal/models"
	"stayhub/internal/repository"
	"stayhub/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID    uint
	FirstName string
	LastName  string
	Phone     string
	Avatar    string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies partial profile edits. Username, email, password and
// role are not editable here.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxNameLen = 50

	if in.FirstName != "" {
		if len(in.FirstName) > maxNameLen {
			return nil, models.NewValidationError("first_name too long (max 50 characters)")
		}
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		if len(in.LastName) > maxNameLen {
			return nil, models.NewValidationError("last_name too long (max 50 characters)")
		}
		user.LastName = in.LastName
	}
	if in.Phone != "" {
		if err := validation.ValidatePhone(in.Phone); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Phone = in.Phone
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
