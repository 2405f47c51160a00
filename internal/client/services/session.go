// Package services contains the application services of the recruitment
// client: the session manager owning authentication state, the resume
// lifecycle manager, and the role-to-mode resolver.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/minhvng/recruitcli/internal/client/api"
	"github.com/minhvng/recruitcli/internal/client/models"
	"github.com/minhvng/recruitcli/internal/client/repositories/tokens"
	"github.com/minhvng/recruitcli/internal/logging"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Status is the authentication state of the running client.
type Status string

const (
	StatusInitializing    Status = "initializing"
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticated   Status = "authenticated"
)

// Snapshot is a read-only view of the session published to subscribers.
// Profile is non-nil exactly when Status is StatusAuthenticated.
type Snapshot struct {
	Status  Status
	Profile *models.UserProfile
}

// SessionService owns the access token and the cached user profile.
//
// Contract:
//   - Restore: load the persisted token and validate it; never returns an
//     error, always ends in a determinate status.
//   - SignIn: all-or-nothing; after any failure neither token nor profile
//     is retained, in memory or on disk.
//   - SignOut: unconditional local reset, no network.
//   - MergeProfile: field-wise overlay on the cached profile, no network.
//
// Restore, SignIn, and SignOut serialize against each other, so a slow
// Restore can never resurrect state over an interleaved SignOut.
type SessionService interface {
	Restore(ctx context.Context) Status
	SignIn(ctx context.Context, username, password string) (*models.UserProfile, error)
	SignOut(ctx context.Context) error
	MergeProfile(patch models.ProfilePatch) *models.UserProfile

	Snapshot() Snapshot
	Token() string
	Subscribe() (<-chan Snapshot, func())

	UpdateProfile(ctx context.Context, patch api.ProfileUpdate) (*models.UserProfile, error)
	UploadAvatar(ctx context.Context, avatar api.FormFile) (*models.UserProfile, error)
	SwitchRole(ctx context.Context, role models.Role) error
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
}

type sessionService struct {
	client api.Client
	tokens tokens.Repository
	log    logging.Logger

	mu      sync.Mutex
	token   string
	profile *models.UserProfile
	status  Status

	subMu   sync.Mutex
	subs    map[uint64]chan Snapshot
	nextSub uint64
}

// NewSessionService constructs a session in StatusInitializing, bound to the
// given API client and token store.
func NewSessionService(client api.Client, repo tokens.Repository, log logging.Logger) SessionService {
	return &sessionService{
		client: client,
		tokens: repo,
		log:    log,
		status: StatusInitializing,
		subs:   make(map[uint64]chan Snapshot),
	}
}

func (s *sessionService) Restore(ctx context.Context) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.tokens.Get(ctx)
	if err != nil {
		s.log.Warn(ctx, "reading persisted token failed", "error", err)
		s.setLocked(StatusUnauthenticated, "", nil)
		return s.status
	}
	if token == "" {
		s.setLocked(StatusUnauthenticated, "", nil)
		return s.status
	}

	if tokenExpired(token) {
		s.log.Info(ctx, "persisted token expired, clearing")
		s.clearLocked(ctx)
		return s.status
	}

	profile, err := s.client.CurrentUser(ctx, token)
	if err != nil || profile == nil {
		if err != nil {
			s.log.Warn(ctx, "token validation failed", "error", err)
		}
		s.clearLocked(ctx)
		return s.status
	}

	s.setLocked(StatusAuthenticated, token, profile)
	s.log.Info(ctx, "session restored", "username", profile.Username)
	return s.status
}

func (s *sessionService) SignIn(ctx context.Context, username, password string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := struct {
		Username string `validate:"required"`
		Password string `validate:"required"`
	}{Username: username, Password: password}
	if err := validate.Struct(creds); err != nil {
		return nil, fmt.Errorf("credentials: %w", ErrEmptyRequiredField)
	}

	token, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.clearLocked(ctx)
		return nil, err
	}
	if token == "" {
		s.clearLocked(ctx)
		return nil, api.ErrNoToken
	}

	if err := s.tokens.Set(ctx, token); err != nil {
		s.clearLocked(ctx)
		return nil, fmt.Errorf("persisting token: %w", err)
	}

	profile, err := s.client.CurrentUser(ctx, token)
	if err != nil {
		s.clearLocked(ctx)
		return nil, err
	}
	if profile == nil {
		s.clearLocked(ctx)
		return nil, api.ErrNoProfile
	}

	s.setLocked(StatusAuthenticated, token, profile)
	s.log.Info(ctx, "signed in", "username", profile.Username)
	return profile.Clone(), nil
}

func (s *sessionService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.tokens.Clear(ctx)
	s.setLocked(StatusUnauthenticated, "", nil)
	s.log.Info(ctx, "signed out")
	if err != nil {
		return fmt.Errorf("clearing persisted token: %w", err)
	}
	return nil
}

func (s *sessionService) MergeProfile(patch models.ProfilePatch) *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return nil
	}
	s.profile.Merge(patch)
	s.publishLocked()
	return s.profile.Clone()
}

func (s *sessionService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Status: s.status, Profile: s.profile.Clone()}
}

func (s *sessionService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Subscribe registers an observer of session transitions. Every state change
// publishes a Snapshot; slow consumers miss intermediate snapshots rather
// than blocking transitions. The returned func cancels the subscription.
func (s *sessionService) Subscribe() (<-chan Snapshot, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 16)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (s *sessionService) UpdateProfile(ctx context.Context, patch api.ProfileUpdate) (*models.UserProfile, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	updated, err := s.client.UpdateProfile(ctx, token, patch)
	if err != nil {
		return nil, err
	}
	return s.MergeProfile(models.PatchFrom(updated)), nil
}

func (s *sessionService) UploadAvatar(ctx context.Context, avatar api.FormFile) (*models.UserProfile, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	updated, err := s.client.UploadAvatar(ctx, token, avatar)
	if err != nil {
		return nil, err
	}
	return s.MergeProfile(models.PatchFrom(updated)), nil
}

func (s *sessionService) SwitchRole(ctx context.Context, role models.Role) error {
	token := s.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	active, err := s.client.SwitchRole(ctx, token, role)
	if err != nil {
		return err
	}
	s.MergeProfile(models.ProfilePatch{ActiveRole: &active})
	return nil
}

func (s *sessionService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	token := s.Token()
	if token == "" {
		return ErrNotAuthenticated
	}
	if newPassword == "" {
		return fmt.Errorf("new password: %w", ErrEmptyRequiredField)
	}
	return s.client.ChangePassword(ctx, token, oldPassword, newPassword)
}

// setLocked applies a state transition and publishes it. Callers hold the
// session lock.
func (s *sessionService) setLocked(status Status, token string, profile *models.UserProfile) {
	s.status = status
	s.token = token
	s.profile = profile
	s.publishLocked()
}

// clearLocked wipes both persisted and in-memory state, ending in
// StatusUnauthenticated. Store errors are logged, not surfaced: local resets
// must not depend on storage health.
func (s *sessionService) clearLocked(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Warn(ctx, "clearing persisted token failed", "error", err)
	}
	s.setLocked(StatusUnauthenticated, "", nil)
}

func (s *sessionService) publishLocked() {
	snap := Snapshot{Status: s.status, Profile: s.profile.Clone()}

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// tokenExpired does a local, unverified check of the token's exp claim.
// A token that is not a JWT, or carries no exp, is left for the server to
// judge; only a definitely-expired token short-circuits the network call.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
