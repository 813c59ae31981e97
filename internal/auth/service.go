// Package auth implements the login, refresh, logout and register flows on
// top of the token codec and the per-user refresh token store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsblog/internal/database"
	"newsblog/internal/token"
	"newsblog/pkg/logger"
)

// DefaultPasswordMinLength applies when Deps.PasswordMinLength is zero
const DefaultPasswordMinLength = 6

// TokenStore is the per-user refresh token set
type TokenStore interface {
	Add(ctx context.Context, userID int64, token string) error
	Contains(ctx context.Context, userID int64, token string) (bool, error)
	Remove(ctx context.Context, userID int64, token string) (bool, error)
	Tokens(ctx context.Context, userID int64) ([]string, error)
}

// AuditLog persists and lists auth events
type AuditLog interface {
	InsertAuditLog(ctx context.Context, log *database.AuditLog) error
	GetAuditLogsByUser(ctx context.Context, userID int64, limit, offset int) ([]database.AuditLog, error)
}

// Deps wires a Service. Credentials defaults to a password check over
// Users and Hasher; Audit may be nil.
type Deps struct {
	Codec             *token.Codec
	Issuer            *token.Issuer
	Tokens            TokenStore
	Users             UserStore
	Hasher            PasswordHasher
	Credentials       CredentialChecker
	Audit             AuditLog
	Logger            *logger.Logger
	PasswordMinLength int
}

// TokenPair is the result of a login or registration
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // seconds
	User         *database.User
}

// AccessGrant is the result of a refresh
type AccessGrant struct {
	AccessToken string
	ExpiresIn   int64
}

type Service struct {
	codec       *token.Codec
	issuer      *token.Issuer
	tokens      TokenStore
	users       UserStore
	hasher      PasswordHasher
	credentials CredentialChecker
	audit       AuditLog
	log         *logger.Logger
	minPassword int
}

func NewService(d Deps) *Service {
	log := d.Logger
	if log == nil {
		log = logger.Discard()
	}
	credentials := d.Credentials
	if credentials == nil {
		credentials = NewPasswordChecker(d.Users, d.Hasher)
	}
	minPassword := d.PasswordMinLength
	if minPassword <= 0 {
		minPassword = DefaultPasswordMinLength
	}

	return &Service{
		codec:       d.Codec,
		issuer:      d.Issuer,
		tokens:      d.Tokens,
		users:       d.Users,
		hasher:      d.Hasher,
		credentials: credentials,
		audit:       d.Audit,
		log:         log.WithComponent("auth"),
		minPassword: minPassword,
	}
}

// Login checks credentials and mints a fresh token pair. The refresh token
// is recorded before the pair is returned.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.credentials.CheckCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.log.SecurityLogger("login_failed", 0, "invalid credentials from "+clientIP(ctx))
			s.record(ctx, database.AuditActionLoginFailed, nil, "invalid credentials")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(ctx, database.AuditActionLogin, &user.ID, "")
	return pair, nil
}

// Refresh exchanges a stored refresh token for a new access token. The
// refresh token itself stays valid.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AccessGrant, error) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		s.log.SecurityLogger("refresh_rejected", 0, err.Error())
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if claims.Kind != token.KindRefresh {
		s.log.SecurityLogger("refresh_rejected", claims.UserID, "token is not a refresh token")
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := s.tokens.Contains(ctx, user.ID, refreshToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.SecurityLogger("refresh_rejected", user.ID, "refresh token revoked or evicted")
		return nil, ErrUnauthorized
	}

	access, err := s.issuer.IssueAccess(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	s.record(ctx, database.AuditActionRefresh, &user.ID, "")
	return &AccessGrant{
		AccessToken: access,
		ExpiresIn:   int64(s.issuer.AccessTTL().Seconds()),
	}, nil
}

// Logout forgets refreshToken if it is a valid, stored refresh token. It
// never fails; problems are only logged.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		s.log.Debug("logout with undecodable token", "error", err.Error())
		return
	}
	if claims.Kind != token.KindRefresh {
		s.log.Debug("logout with non-refresh token", "user_id", claims.UserID)
		return
	}

	removed, err := s.tokens.Remove(ctx, claims.UserID, refreshToken)
	if err != nil {
		s.log.WithError(err).Error("failed to remove refresh token", "user_id", claims.UserID)
		return
	}
	if removed {
		s.record(ctx, database.AuditActionLogout, &claims.UserID, "")
	}
}

// Register creates a principal and logs it in
func (s *Service) Register(ctx context.Context, name, email, password string) (*TokenPair, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if len(password) < s.minPassword {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, s.minPassword)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &database.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(ctx, database.AuditActionRegister, &user.ID, "")
	return pair, nil
}

// Sessions returns how many refresh tokens the user currently holds
func (s *Service) Sessions(ctx context.Context, userID int64) (int, error) {
	tokens, err := s.tokens.Tokens(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(tokens), nil
}

// AuditTrail lists the user's own auth events, newest first
func (s *Service) AuditTrail(ctx context.Context, userID int64, limit, offset int) ([]database.AuditLog, error) {
	if s.audit == nil {
		return []database.AuditLog{}, nil
	}
	return s.audit.GetAuditLogsByUser(ctx, userID, limit, offset)
}

// User returns the principal behind an authenticated request
func (s *Service) User(ctx context.Context, userID int64) (*database.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) issuePair(ctx context.Context, user *database.User) (*TokenPair, error) {
	access, err := s.issuer.IssueAccess(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := s.issuer.IssueRefresh(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := s.tokens.Add(ctx, user.ID, refresh); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.issuer.AccessTTL().Seconds()),
		User:         user,
	}, nil
}

// record writes an audit entry; failures are logged and otherwise ignored
func (s *Service) record(ctx context.Context, action string, userID *int64, details string) {
	var uid int64
	if userID != nil {
		uid = *userID
	}
	s.log.AuditLogger(action, uid, "auth", details)

	if s.audit == nil {
		return
	}
	entry := &database.AuditLog{
		Action:    action,
		UserID:    userID,
		Details:   details,
		IPAddress: clientIP(ctx),
	}
	if err := s.audit.InsertAuditLog(ctx, entry); err != nil {
		s.log.WithError(err).Error("failed to write audit log", "action", action)
	}
}
