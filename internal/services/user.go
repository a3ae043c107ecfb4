package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"github.com/readsphere/readsphere-backend/internal/apierr"
	"github.com/readsphere/readsphere-backend/internal/logger"
	"github.com/readsphere/readsphere-backend/internal/repos"
	"github.com/readsphere/readsphere-backend/internal/types"
)

type ProfileInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserService interface {
	Get(ctx context.Context, id uint) (*types.User, error)
	// UpdateProfile applies the non-blank fields of the input to the user.
	UpdateProfile(ctx context.Context, id uint, input ProfileInput) (*types.User, error)
	// UpdateSettings replaces the user's settings document with the given
	// JSON object.
	UpdateSettings(ctx context.Context, id uint, settings map[string]any) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) Get(ctx context.Context, id uint) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("user_not_found", fmt.Errorf("User not found"))
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (us *userService) UpdateProfile(ctx context.Context, id uint, input ProfileInput) (*types.User, error) {
	user, err := us.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, apierr.BadRequest("invalid_email", fmt.Errorf("Please provide a valid email address"))
		}
		existing, err := us.userRepo.GetByEmail(ctx, nil, email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apierr.Conflict("email_in_use", fmt.Errorf("Email already in use by another account"))
		}
		user.Email = email
	}
	if err := us.userRepo.Update(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (us *userService) UpdateSettings(ctx context.Context, id uint, settings map[string]any) (*types.User, error) {
	if _, err := us.Get(ctx, id); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, apierr.BadRequest("invalid_settings", err)
	}
	if err := us.userRepo.UpdateSettings(ctx, nil, id, raw); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return us.Get(ctx, id)
}
