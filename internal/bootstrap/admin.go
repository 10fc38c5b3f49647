// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukerupert/shelf/internal/domain"
	"github.com/dukerupert/shelf/internal/service"
)

// AdminConfig contains configuration for the initial admin user.
type AdminConfig struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Validate checks that the admin configuration is valid.
func (c *AdminConfig) Validate() error {
	if c.Email == "" {
		return errors.New("admin email is required")
	}
	if c.Password == "" {
		return errors.New("admin password is required")
	}
	if len(c.Password) < 12 {
		return errors.New("admin password must be at least 12 characters")
	}
	return nil
}

// EnsureAdmin registers the configured administrator if no user has that email.
// It is idempotent and runs on every startup.
//
// An empty Email or Password skips creation with a warning, so development
// databases can run without an administrator.
func EnsureAdmin(ctx context.Context, users service.UserService, cfg *AdminConfig, logger *slog.Logger) error {
	if cfg == nil || cfg.Email == "" || cfg.Password == "" {
		logger.Warn("bootstrap: skipping admin creation, BOOTSTRAP_ADMIN_EMAIL or BOOTSTRAP_ADMIN_PASSWORD not set")
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid admin configuration: %w", err)
	}

	exists, err := users.Exists(ctx, cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if exists {
		logger.Info("bootstrap: admin user already exists", "email", cfg.Email)
		return nil
	}

	firstName := cfg.FirstName
	if firstName == "" {
		firstName = "Admin"
	}
	lastName := cfg.LastName
	if lastName == "" {
		lastName = "User"
	}

	user, err := users.Register(ctx, domain.RegistrationInput{
		Email:     cfg.Email,
		Password:  cfg.Password,
		FirstName: firstName,
		LastName:  lastName,
	}, domain.RoleUser, domain.RoleAdmin)
	if err != nil {
		// Another instance may have created it between Exists and Register.
		if errors.Is(err, domain.ErrEmailTaken) {
			logger.Info("bootstrap: admin user already exists (concurrent creation)", "email", cfg.Email)
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("bootstrap: admin user created", "email", user.Email, "user_id", user.ID)
	return nil
}
