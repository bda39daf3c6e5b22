// Package account implements local registration and the login session.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/lingua/internal/model"
	"github.com/verte-zerg/lingua/internal/store"
)

var (
	// ErrEmailAlreadyExists is returned when registering a taken email.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrInvalidInput is returned when registration fields fail validation.
	ErrInvalidInput = errors.New("invalid input")
)

// Store persists accounts, the current session and initial progress.
// RegisterAccount must create the account, its progress and the session
// atomically.
type Store interface {
	RegisterAccount(ctx context.Context, acct model.Account, p model.Progress, at time.Time) error
	FindAccountByEmail(ctx context.Context, email string) (model.Account, bool, error)
	FindAccountByID(ctx context.Context, id string) (model.Account, bool, error)
	SetSession(ctx context.Context, accountID string, at time.Time) error
	SessionAccount(ctx context.Context) (string, bool, error)
	ClearSession(ctx context.Context) error
}

type registration struct {
	Username string `validate:"required,max=64"`
	Email    string `validate:"required,email"`
}

// Service registers accounts and tracks who is logged in.
type Service struct {
	store    Store
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
	log      *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides account id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New returns a Service backed by st.
func New(st Store, opts ...Option) *Service {
	s := &Service{
		store:    st,
		validate: validator.New(),
		now:      time.Now,
		newID:    uuid.NewString,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account with an empty progress record and logs it in.
// The password is accepted for interface parity but never stored.
func (s *Service) Register(ctx context.Context, username, email, _ string) (model.Account, error) {
	in := registration{
		Username: strings.TrimSpace(username),
		Email:    normalizeEmail(email),
	}
	if err := s.validate.Struct(in); err != nil {
		return model.Account{}, fmt.Errorf("%w: %s", ErrInvalidInput, describe(err))
	}

	acct := model.Account{
		ID:        s.newID(),
		Username:  in.Username,
		Email:     in.Email,
		CreatedAt: s.now(),
	}
	if err := s.store.RegisterAccount(ctx, acct, model.NewProgress(), acct.CreatedAt); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return model.Account{}, ErrEmailAlreadyExists
		}
		return model.Account{}, fmt.Errorf("create account: %w", err)
	}
	s.log.Info("account registered", zap.String("account", acct.ID), zap.String("username", acct.Username))
	return acct, nil
}

// Login opens a session for the account registered with email.
// It returns a nil account when no account matches.
func (s *Service) Login(ctx context.Context, email, _ string) (*model.Account, error) {
	acct, ok, err := s.store.FindAccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if !ok {
		s.log.Debug("login rejected", zap.String("email", normalizeEmail(email)))
		return nil, nil
	}
	if err := s.store.SetSession(ctx, acct.ID, s.now()); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	s.log.Info("logged in", zap.String("account", acct.ID))
	return &acct, nil
}

// Logout ends the current session.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the logged-in account, or nil when there is none.
func (s *Service) Current(ctx context.Context) (*model.Account, error) {
	id, ok, err := s.store.SessionAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	acct, ok, err := s.store.FindAccountByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &acct, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, strings.ToLower(fe.Field())+" is required")
		case "email":
			parts = append(parts, "email is not valid")
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return strings.Join(parts, ", ")
}
