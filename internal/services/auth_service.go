package services

import (
	"context"
	"strings"
	"time"

	"travelnest/internal/domain"
	"travelnest/internal/domain/models"
	"travelnest/internal/repositories"
	"travelnest/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthService provisions admins and checks their credentials.
type AuthService struct {
	Admins     repositories.AdminRepository
	Tokens     *TokenService
	BcryptCost int
}

// LoginResult is the bearer credential handed to an admin.
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s AuthService) cost() int {
	if s.BcryptCost > 0 {
		return s.BcryptCost
	}
	return bcrypt.DefaultCost
}

func (s AuthService) CreateAdmin(ctx context.Context, username, password string) (models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.Admin{}, domain.ValidationError{Field: "username", Msg: "required"}
	}
	if password == "" {
		return models.Admin{}, domain.ValidationError{Field: "password", Msg: "required"}
	}

	exists, err := s.Admins.Exists(ctx, username)
	if err != nil {
		return models.Admin{}, domain.InternalError{Msg: "failed to check admin", Err: err}
	}
	if exists {
		return models.Admin{}, domain.AlreadyExistsError{Resource: "admin", Msg: "admin already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		return models.Admin{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	admin, err := s.Admins.Create(ctx, username, string(hash), utils.NowUTC())
	if err != nil {
		if domain.IsAlreadyExists(err) {
			return models.Admin{}, err
		}
		return models.Admin{}, domain.InternalError{Msg: "failed to create admin", Err: err}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "create_admin", "admin created", utils.Int64("admin_id", admin.ID))
	return admin, nil
}

// VerifyCredentials returns the admin when username and password match.
// Unknown user and wrong password fail identically.
func (s AuthService) VerifyCredentials(ctx context.Context, username, password string) (models.Admin, error) {
	admin, err := s.Admins.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Admin{}, domain.UnauthorizedError{Msg: "invalid admin credentials"}
		}
		return models.Admin{}, domain.InternalError{Msg: "failed to load admin", Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return models.Admin{}, domain.UnauthorizedError{Msg: "invalid admin credentials"}
	}
	return admin, nil
}

func (s AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	admin, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "login", "login rejected")
		return LoginResult{}, err
	}

	token, exp, err := s.Tokens.Generate(admin)
	if err != nil {
		return LoginResult{}, domain.InternalError{Msg: "failed to issue token", Err: err}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "login", "admin logged in", utils.Int64("admin_id", admin.ID))
	return LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.Tokens.TTL().Seconds()),
		ExpiresAt:   exp,
	}, nil
}
