package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dukerupert/shelf/internal/auth"
	"github.com/dukerupert/shelf/internal/domain"
	"github.com/dukerupert/shelf/internal/repository"
	"github.com/dukerupert/shelf/internal/telemetry"
)

// UserService provides registration and credential checks.
type UserService interface {
	// Register creates the user with the given roles (ROLE_USER when none)
	// together with the user's shopping cart.
	Register(ctx context.Context, input domain.RegistrationInput, roles ...string) (*domain.User, error)

	// Authenticate verifies email/password and returns the principal if valid.
	Authenticate(ctx context.Context, email, password string) (*domain.Principal, error)

	// Exists reports whether a live user with email is registered.
	Exists(ctx context.Context, email string) (bool, error)
}

type userService struct {
	store  repository.Store
	hasher *auth.Hasher
	logger *slog.Logger
}

// NewUserService creates a new UserService instance
func NewUserService(store repository.Store, hasher *auth.Hasher, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		store:  store,
		hasher: hasher,
		logger: logger.With("service", "user"),
	}
}

func (s *userService) Register(ctx context.Context, input domain.RegistrationInput, roles ...string) (*domain.User, error) {
	const op = "user.register"

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, domain.NewValidationError(op, "email", "must not be blank")
	}
	if len(roles) == 0 {
		roles = []string{domain.RoleUser}
	}

	exists, err := s.Exists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, rejected(domain.ErrEmailTaken, op, "User with given email already exists")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) || errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, domain.NewValidationError(op, "password", err.Error())
		}
		return nil, domain.Internal(err, op, "failed to hash password")
	}

	var created repository.User
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		var err error
		created, err = q.CreateUser(ctx, repository.CreateUserParams{
			Email:           email,
			PasswordHash:    hash,
			FirstName:       input.FirstName,
			LastName:        input.LastName,
			ShippingAddress: repository.Text(input.ShippingAddress),
		})
		if err != nil {
			return err
		}

		for _, name := range roles {
			role, err := q.GetRoleByName(ctx, name)
			if err != nil {
				if repository.IsNotFound(err) {
					return domain.Internal(err, op, "There is no role name: "+name)
				}
				return err
			}
			if err := q.AddUserRole(ctx, repository.AddUserRoleParams{UserID: created.ID, RoleID: role.ID}); err != nil {
				return err
			}
		}

		_, err = q.CreateCart(ctx, created.ID)
		return err
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, rejected(domain.ErrEmailTaken, op, "User with given email already exists")
		}
		return nil, txError(err, op, "failed to register user")
	}

	if telemetry.Business != nil {
		telemetry.Business.Signups.Inc()
	}
	s.logger.Info("user registered", "user_id", created.ID, "roles", roles)

	return &domain.User{
		ID:              created.ID,
		Email:           created.Email,
		FirstName:       created.FirstName,
		LastName:        created.LastName,
		ShippingAddress: created.ShippingAddress.String,
		Roles:           roles,
	}, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.Principal, error) {
	const op = "user.authenticate"

	user, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if repository.IsNotFound(err) {
			s.recordLogin(false)
			return nil, rejected(domain.ErrInvalidCredentials, op, "Login or password is incorrect")
		}
		return nil, domain.Internal(err, op, "failed to get user")
	}

	if err := s.hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.recordLogin(false)
			return nil, rejected(domain.ErrInvalidCredentials, op, "Login or password is incorrect")
		}
		return nil, domain.Internal(err, op, "failed to verify password")
	}

	roles, err := s.store.ListUserRoleNames(ctx, user.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load roles")
	}

	s.recordLogin(true)
	return &domain.Principal{Email: user.Email, Roles: roles}, nil
}

func (s *userService) Exists(ctx context.Context, email string) (bool, error) {
	_, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	switch {
	case err == nil:
		return true, nil
	case repository.IsNotFound(err):
		return false, nil
	default:
		return false, domain.Internal(err, "user.exists", "failed to get user")
	}
}

func (s *userService) recordLogin(ok bool) {
	if telemetry.Business == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	telemetry.Business.Logins.WithLabelValues(result).Inc()
}
