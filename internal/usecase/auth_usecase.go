package usecase

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"medstore/internal/config"
	"medstore/internal/domain/model"
	repo "medstore/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

const bcryptCost = 12

type AuthUsecase struct {
	cfg   config.Config
	users repo.UserRepository
}

func NewAuthUsecase(cfg config.Config, users repo.UserRepository) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, users: users}
}

type RegisterInput struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

type AuthOutput struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthOutput, error) {
	if strings.TrimSpace(in.Firstname) == "" ||
		strings.TrimSpace(in.Lastname) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		in.Password == "" {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "all fields are required")
	}
	if len(in.Password) < 6 {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "password must be at least 6 characters")
	}

	if _, err := u.users.FindByEmail(ctx, in.Email); err == nil {
		return AuthOutput{}, NewHTTPError(http.StatusConflict, "email already in use")
	} else if err != repo.ErrNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// only the hash is ever stored
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "hashing failed")
	}

	user := &model.User{
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Email:        in.Email,
		PasswordHash: string(pwHash),
		Role:         model.RoleUser,
	}

	if err := u.users.Create(ctx, user); err != nil {
		if err == repo.ErrConflict {
			return AuthOutput{}, NewHTTPError(http.StatusConflict, "email already in use")
		}
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	token, err := u.issueToken(user)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "token issue failed")
	}

	return AuthOutput{Token: token, User: *user}, nil
}

// Login deliberately reports unknown email and wrong password the same way.
func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (AuthOutput, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := u.issueToken(user)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "token issue failed")
	}

	return AuthOutput{Token: token, User: *user}, nil
}

func (u *AuthUsecase) issueToken(user *model.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(u.cfg.JWTSecret))
}
