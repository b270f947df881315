package services

import (
	"context"
	"errors"
	"strings"

	"github.com/localnerve/tutorbuddy/internal/models"
	"gorm.io/gorm"
)

// UserProfile is the public part of a user record
type UserProfile struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	TutorProfileID *uint64 `json:"tutor_profile_id"`
}

// CreateUserInput carries the identity returned by the external login provider
type CreateUserInput struct {
	FirstName     string
	LastName      string
	Email         string
	ExternalID    string
	ExternalToken string
}

// FindUserByExternalID returns the user with the given external identity id
func (g *Gateway) FindUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	ctx, cancel := g.opContext(ctx)
	defer cancel()

	var user models.User
	err := g.lookup(ctx).Table(g.tables.Users).
		Where("facebook_id = ?", externalID).
		Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "user", Key: externalID}
		}
		return nil, queryFailed("FindUserByExternalID", err)
	}

	return &user, nil
}

// FindUserBySession returns the user currently holding the session token
func (g *Gateway) FindUserBySession(ctx context.Context, sessionToken string) (*models.User, error) {
	if strings.TrimSpace(sessionToken) == "" {
		return nil, &NotFoundError{Entity: "session", Key: "(empty)"}
	}

	ctx, cancel := g.opContext(ctx)
	defer cancel()

	var user models.User
	err := g.lookup(ctx).Table(g.tables.Users).
		Where("session_id = ?", sessionToken).
		Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "session", Key: "(redacted)"}
		}
		return nil, queryFailed("FindUserBySession", err)
	}

	return &user, nil
}

// CreateSession stores a session token for the user.
// It does not check that the user exists; an unknown id updates nothing and still succeeds.
func (g *Gateway) CreateSession(ctx context.Context, userID uint64, sessionToken string) error {
	ctx, cancel := g.opContext(ctx)
	defer cancel()

	err := g.conn(ctx).Table(g.tables.Users).Model(&models.User{}).
		Where("id = ?", userID).
		Update("session_id", sessionToken).Error
	if err != nil {
		return queryFailed("CreateSession", err)
	}
	return nil
}

// TerminateSession clears the user's session token
func (g *Gateway) TerminateSession(ctx context.Context, userID uint64) error {
	ctx, cancel := g.opContext(ctx)
	defer cancel()

	err := g.conn(ctx).Table(g.tables.Users).Model(&models.User{}).
		Where("id = ?", userID).
		Update("session_id", nil).Error
	if err != nil {
		return queryFailed("TerminateSession", err)
	}
	return nil
}

// GetUserProfile returns name, email and tutor link for a user
func (g *Gateway) GetUserProfile(ctx context.Context, userID uint64) (*UserProfile, error) {
	ctx, cancel := g.opContext(ctx)
	defer cancel()

	var profile UserProfile
	err := g.lookup(ctx).Table(g.tables.Users).
		Select("first_name", "last_name", "email", "tutor_profile_id").
		Where("id = ?", userID).
		Take(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "user profile", Key: userID}
		}
		return nil, queryFailed("GetUserProfile", err)
	}

	return &profile, nil
}

// CreateUser inserts a user and returns its generated id
func (g *Gateway) CreateUser(ctx context.Context, in CreateUserInput) (uint64, error) {
	ctx, cancel := g.opContext(ctx)
	defer cancel()

	user := models.User{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		ExternalID:    in.ExternalID,
		ExternalToken: in.ExternalToken,
	}
	if err := g.conn(ctx).Table(g.tables.Users).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, &ConflictError{Entity: "user", Key: in.ExternalID, Reason: "external id already registered"}
		}
		return 0, queryFailed("CreateUser", err)
	}

	return user.ID, nil
}

// IsTutor reports whether the user is linked to a tutor profile
func (g *Gateway) IsTutor(ctx context.Context, userID uint64) (bool, error) {
	ctx, cancel := g.opContext(ctx)
	defer cancel()

	var user models.User
	err := g.lookup(ctx).Table(g.tables.Users).
		Select("id", "tutor_profile_id").
		Where("id = ?", userID).
		Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, &NotFoundError{Entity: "user", Key: userID}
		}
		return false, queryFailed("IsTutor", err)
	}

	return user.IsTutor(), nil
}
