package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CredentialRepository defines decoupled operations for credential
// persistence. Both the token and the identity are singleton records.
type CredentialRepository interface {
	GetToken(ctx context.Context) (*Token, error)
	UpsertToken(ctx context.Context, token *Token) error
	GetIdentity(ctx context.Context) (*Identity, error)
	UpsertIdentity(ctx context.Context, identity *Identity) error
	Clear(ctx context.Context) error
}

// gormCredentialRepo is a GORM-backed implementation of CredentialRepository.
// Use constructor NewCredentialRepository to obtain an instance.
type gormCredentialRepo struct{ db *gorm.DB }

// NewCredentialRepository creates a CredentialRepository. Accepts *gorm.DB to
// avoid global access.
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &gormCredentialRepo{db: db}
}

func (r *gormCredentialRepo) GetToken(ctx context.Context) (*Token, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var token Token
	err := r.db.WithContext(ctx).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *gormCredentialRepo) UpsertToken(ctx context.Context, token *Token) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	token.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "expires_at"}),
	}).Create(token).Error
}

func (r *gormCredentialRepo) GetIdentity(ctx context.Context) (*Identity, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var identity Identity
	err := r.db.WithContext(ctx).First(&identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *gormCredentialRepo) UpsertIdentity(ctx context.Context, identity *Identity) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	identity.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "user_name", "first_name", "last_name", "organization_id",
			"organization_name", "email", "branch_name", "base_currency", "preferred_language",
		}),
	}).Create(identity).Error
}

func (r *gormCredentialRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	if err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Token{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Identity{}).Error
}
