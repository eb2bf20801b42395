package db

import (
	"context"
	"time"

	"github.com/bizcurrency/bizcli/auth"
	"github.com/rs/zerolog/log"
)

// Store adapts a CredentialRepository to the auth.CredentialStore contract.
// Reads are lenient: a missing or unparseable record is reported as absent,
// never as a hard failure, so a damaged credential database degrades to a
// forced re-login.
type Store struct{ repo CredentialRepository }

// NewStore creates an auth credential store backed by the given repository.
func NewStore(repo CredentialRepository) *Store {
	return &Store{repo: repo}
}

func (s *Store) SaveTokens(pair auth.TokenPair) error {
	record := &Token{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt.Format(time.RFC3339),
	}
	return s.repo.UpsertToken(context.Background(), record)
}

func (s *Store) LoadTokens() (*auth.TokenPair, error) {
	record, err := s.repo.GetToken(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read token record, treating as absent")
		return nil, nil
	}
	if record == nil || record.AccessToken == "" || record.RefreshToken == "" {
		return nil, nil
	}
	expiresAt, err := time.Parse(time.RFC3339, record.ExpiresAt)
	if err != nil {
		log.Warn().Err(err).Str("expires_at", record.ExpiresAt).Msg("Unparseable token expiry, treating record as absent")
		return nil, nil
	}
	return &auth.TokenPair{
		AccessToken:  record.AccessToken,
		RefreshToken: record.RefreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Store) SaveIdentity(identity auth.Identity) error {
	record := &Identity{
		UserID:            identity.UserID,
		UserName:          identity.UserName,
		FirstName:         identity.FirstName,
		LastName:          identity.LastName,
		OrganizationID:    identity.OrganizationID,
		OrganizationName:  identity.OrganizationName,
		Email:             identity.Email,
		BranchName:        identity.BranchName,
		BaseCurrency:      identity.BaseCurrency,
		PreferredLanguage: identity.PreferredLanguage,
	}
	return s.repo.UpsertIdentity(context.Background(), record)
}

func (s *Store) LoadIdentity() (*auth.Identity, error) {
	record, err := s.repo.GetIdentity(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read identity record, treating as absent")
		return nil, nil
	}
	if record == nil || record.UserID == "" {
		return nil, nil
	}
	return &auth.Identity{
		UserID:            record.UserID,
		UserName:          record.UserName,
		FirstName:         record.FirstName,
		LastName:          record.LastName,
		OrganizationID:    record.OrganizationID,
		OrganizationName:  record.OrganizationName,
		Email:             record.Email,
		BranchName:        record.BranchName,
		BaseCurrency:      record.BaseCurrency,
		PreferredLanguage: record.PreferredLanguage,
	}, nil
}

func (s *Store) Clear() error {
	return s.repo.Clear(context.Background())
}
