package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/repository"
)

type UserService struct {
	store    repository.Store
	tokens   *TokenIssuer
	notifier Notifier
	log      *slog.Logger
	cost     int
}

func NewUserService(store repository.Store, tokens *TokenIssuer, notifier Notifier, log *slog.Logger) *UserService {
	return &UserService{store: store, tokens: tokens, notifier: notifier, log: log, cost: bcrypt.DefaultCost}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	const op = "users.register"

	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" {
		return nil, validation(op, "name is required")
	}
	if err := validateEmail(op, email); err != nil {
		return nil, err
	}
	if err := validatePassword(op, in.Password); err != nil {
		return nil, err
	}
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, validation(op, "role must be one of admin, landlord, tenant")
	}

	_, err := s.store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, conflict(op, "email already registered")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, storeErr(op, "user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindInternal, Msg: "failed to process registration", Err: err}
	}

	u := &models.User{Name: name, Email: email, PasswordHash: string(hash), Role: role}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict(op, "email already registered")
		}
		return nil, storeErr(op, "user", err)
	}

	s.notifier.Notify(ctx, Notice{
		UserID:     u.ID,
		Email:      u.Email,
		Type:       models.NotifyWelcome,
		Title:      "Welcome to RentEase",
		Message:    fmt.Sprintf("Hi %s, your %s account is ready.", u.Name, u.Role),
		EntityType: "user",
		EntityID:   u.ID,
	})
	return u, nil
}

// Authenticate checks credentials and issues a token pair. Unknown emails
// and wrong passwords fail the same way.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, TokenPair, error) {
	const op = "users.authenticate"

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, TokenPair{}, validation(op, "email and password are required")
	}

	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, &Error{Op: op, Kind: KindAuth, Msg: "invalid credentials"}
		}
		return nil, TokenPair{}, storeErr(op, "user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.log.Debug("auth.password_mismatch", "user_id", u.ID)
		return nil, TokenPair{}, &Error{Op: op, Kind: KindAuth, Msg: "invalid credentials"}
	}

	pair, err := s.tokens.Issue(u)
	if err != nil {
		return nil, TokenPair{}, &Error{Op: op, Kind: KindInternal, Msg: "failed to generate login tokens", Err: err}
	}
	return u, pair, nil
}

// Refresh exchanges a refresh token for a new pair; the user must still exist.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.User, TokenPair, error) {
	const op = "users.refresh"

	claims, err := s.tokens.Parse(refreshToken, TokenRefresh)
	if err != nil {
		return nil, TokenPair{}, &Error{Op: op, Kind: KindAuth, Msg: "invalid or expired refresh token"}
	}
	id, _ := claims.UserID()

	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, &Error{Op: op, Kind: KindAuth, Msg: "user associated with token not found"}
		}
		return nil, TokenPair{}, storeErr(op, "user", err)
	}

	pair, err := s.tokens.Issue(u)
	if err != nil {
		return nil, TokenPair{}, &Error{Op: op, Kind: KindInternal, Msg: "failed to generate new tokens", Err: err}
	}
	return u, pair, nil
}

func (s *UserService) ChangePassword(ctx context.Context, actor Actor, current, next string) error {
	const op = "users.change_password"

	if err := validatePassword(op, next); err != nil {
		return err
	}
	u, err := s.store.GetUser(ctx, actor.UserID)
	if err != nil {
		return storeErr(op, "user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return &Error{Op: op, Kind: KindAuth, Msg: "current password is incorrect"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return &Error{Op: op, Kind: KindInternal, Msg: "failed to update password", Err: err}
	}
	u.PasswordHash = string(hash)
	return storeErr(op, "user", s.store.UpdateUser(ctx, u))
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, storeErr("users.get", "user", err)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, actor Actor) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, forbidden("users.list", "admin access required")
	}
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, storeErr("users.list", "user", err)
	}
	return users, nil
}

// Delete removes a user who owns no properties and holds no bookings.
func (s *UserService) Delete(ctx context.Context, actor Actor, id uint) error {
	const op = "users.delete"

	if !actor.IsAdmin() {
		return forbidden(op, "admin access required")
	}
	if actor.UserID == id {
		return validation(op, "admins cannot delete their own account")
	}

	return s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.GetUser(ctx, id); err != nil {
			return storeErr(op, "user", err)
		}
		links, err := tx.CountUserLinks(ctx, id)
		if err != nil {
			return storeErr(op, "user", err)
		}
		if links > 0 {
			return conflict(op, "cannot delete user with linked properties or bookings")
		}
		return storeErr(op, "user", tx.DeleteUser(ctx, id))
	})
}
