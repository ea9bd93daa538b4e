package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"perftrack/internal/domain/document"
)

const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Service struct {
	Store   DocumentStore
	Log     *zap.Logger
	Secret  string
	TTL     time.Duration
	Now     func() time.Time
	// StoreAs is the format SetPassword writes. Clients that verify the
	// document themselves understand only plaintext and SHA-256 digests.
	StoreAs CredentialKind
}

func NewService(store DocumentStore, log *zap.Logger, secret string, ttl time.Duration) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		Store:   store,
		Log:     log.Named("auth"),
		Secret:  secret,
		TTL:     ttl,
		Now:     time.Now,
		StoreAs: CredentialSHA256,
	}
}

// Verify checks password against the stored admin credential and reports
// which format the credential is stored in.
func (s *Service) Verify(ctx context.Context, password string) (CredentialKind, bool) {
	cred := ParseCredential(s.Store.Load(ctx).AdminPassword)
	return cred.Kind, cred.Verify(password)
}

func (s *Service) Login(ctx context.Context, password string) (Session, error) {
	kind, ok := s.Verify(ctx, password)
	if !ok {
		s.Log.Warn("admin login rejected")
		return Session{}, ErrInvalidCredentials
	}
	if kind == CredentialPlaintext {
		s.Log.Warn("admin password is stored in plaintext; change it to store a digest")
	}
	token, expires, err := GenerateToken(s.Secret, s.TTL, s.Now())
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: expires}, nil
}

func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	if _, ok := s.Verify(ctx, current); !ok {
		return ErrInvalidCredentials
	}
	return s.SetPassword(ctx, next)
}

// SetPassword stores next in the StoreAs format without checking the old one.
func (s *Service) SetPassword(ctx context.Context, next string) error {
	if len(next) < MinPasswordLength {
		return ErrWeakPassword
	}
	hashed, err := EncodePassword(s.StoreAs, next)
	if err != nil {
		return err
	}
	if err := s.Store.Update(ctx, func(doc *document.Document) error {
		doc.AdminPassword = hashed
		return nil
	}); err != nil {
		return err
	}
	s.Log.Info("admin password changed", zap.Stringer("format", s.StoreAs))
	return nil
}
