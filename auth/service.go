package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/deliverylivre/storefront/apiclient"
	"github.com/deliverylivre/storefront/logger"
	"github.com/deliverylivre/storefront/models"
	"github.com/deliverylivre/storefront/session"
)

// Validation failures short-circuit before any network call.
var (
	ErrMissingFields    = errors.New("all fields are required")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWeakPassword     = errors.New("password needs 8+ characters with upper, lower, digit and symbol")
	ErrIncompleteLogin  = errors.New("login response missing user or token")
)

// Service handles authentication and profile management.
type Service struct {
	api      *apiclient.Client
	sessions *session.Store
}

func NewService(api *apiclient.Client, sessions *session.Store) *Service {
	return &Service{api: api, sessions: sessions}
}

// Restore loads the persisted session, if any, and arms the request
// pipeline with its token. Returns nil when no session is stored.
func (s *Service) Restore() (*models.User, error) {
	sess, err := s.sessions.Load()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	s.api.SetToken(sess.Token)
	return &sess.User, nil
}

type loginResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// Login authenticates against POST /login and persists the session.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	var resp loginResponse
	err := s.api.PostJSON(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.User == nil || resp.AccessToken == "" {
		return nil, ErrIncompleteLogin
	}

	s.api.SetToken(resp.AccessToken)
	if err := s.sessions.Save(*resp.User, resp.AccessToken); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}

	logger.Info("logged in", zap.String("role", string(resp.User.Role)))
	return resp.User, nil
}

// Register creates a client account. All validation happens locally before
// the request is issued.
func (s *Service) Register(ctx context.Context, name, email, password, confirmation string) error {
	if name == "" || email == "" || password == "" || confirmation == "" {
		return ErrMissingFields
	}
	if password != confirmation {
		return ErrPasswordMismatch
	}
	if !IsStrongPassword(password) {
		return ErrWeakPassword
	}

	return s.api.PostJSON(ctx, "/register", map[string]string{
		"name":                  name,
		"email":                 email,
		"password":              password,
		"password_confirmation": confirmation,
	}, nil)
}

// ForgotPassword asks the backend to start a password reset.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return ErrMissingFields
	}
	return s.api.PostJSON(ctx, "/forgot-password", map[string]string{"email": email}, nil)
}

// Me refreshes the current user from the backend and re-persists the
// session with the held token.
func (s *Service) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.api.GetJSON(ctx, "/clients/me", &user); err != nil {
		return nil, err
	}
	if token := s.api.Token(); token != "" {
		if err := s.sessions.Save(user, token); err != nil {
			return nil, fmt.Errorf("persisting session: %w", err)
		}
	}
	return &user, nil
}

// Upload is a file attached to a profile update.
type Upload struct {
	Name    string
	Content io.Reader
}

// ProfileUpdate carries the editable profile fields. Password fields are
// optional; when set they must pass the same checks as registration.
type ProfileUpdate struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
	Photo                *Upload
	Addresses            []models.Address
}

// UpdateProfile submits POST /clients/updateProfile as a multipart form with
// a `_method=PUT` override, then refreshes the stored user.
func (s *Service) UpdateProfile(ctx context.Context, up ProfileUpdate) (*models.User, error) {
	if up.Name == "" || up.Email == "" {
		return nil, ErrMissingFields
	}
	if up.Password != "" {
		if up.Password != up.PasswordConfirmation {
			return nil, ErrPasswordMismatch
		}
		if !IsStrongPassword(up.Password) {
			return nil, ErrWeakPassword
		}
	}

	form := apiclient.NewForm().
		Set("name", up.Name).
		Set("email", up.Email)
	if up.Password != "" {
		form.Set("password", up.Password)
		form.Set("password_confirmation", up.PasswordConfirmation)
	}
	if up.Photo != nil {
		form.File("photo", up.Photo.Name, up.Photo.Content)
	}
	for i, addr := range up.Addresses {
		prefix := "addresses[" + strconv.Itoa(i) + "]"
		if addr.ID != 0 {
			form.Set(prefix+"[id]", strconv.Itoa(addr.ID))
		}
		form.Set(prefix+"[label]", addr.Label)
		form.Set(prefix+"[cep]", addr.CEP)
		form.Set(prefix+"[street]", addr.Street)
		form.Set(prefix+"[neighborhood]", addr.Neighborhood)
		form.Set(prefix+"[city]", addr.City)
		form.Set(prefix+"[state]", addr.State)
		form.Set(prefix+"[number]", addr.Number)
		form.Set(prefix+"[complement]", addr.Complement)
		form.Set(prefix+"[note]", addr.Note)
	}
	form.Set("_method", "PUT")

	if err := s.api.PostMultipart(ctx, "/clients/updateProfile", form, nil); err != nil {
		return nil, err
	}
	return s.Me(ctx)
}

// RemoveAddress deletes one of the user's saved addresses.
func (s *Service) RemoveAddress(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/clients/addresses/%d", id))
}

// Logout drops the persisted session and disarms the pipeline.
func (s *Service) Logout() error {
	s.api.ClearToken()
	return s.sessions.Clear()
}
