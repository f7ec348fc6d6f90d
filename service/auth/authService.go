package auth

import (
	"context"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/karim076/Weektaken-LU-1-sub000/model"
	authrepo "github.com/karim076/Weektaken-LU-1-sub000/repository/auth"
	"github.com/karim076/Weektaken-LU-1-sub000/util/hash"
	jwtutil "github.com/karim076/Weektaken-LU-1-sub000/util/jwt"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
	ErrBadInput      = errors.New("bad input")
	ErrInvalidCreds  = errors.New("invalid credentials")
)

// Code unwraps to the sentinel used by controllers, nil for plain errors.
func Code(err error) error {
	for _, sentinel := range []error{ErrEmailTaken, ErrUsernameTaken, ErrBadInput, ErrInvalidCreds} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}

func wrap(err error, msg string) error { return errors.Wrap(err, msg) }

type Service interface {
	// Register creates a customer account and returns it with a signed JWT.
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
}

type service struct {
	ur     authrepo.Repo
	secret string
}

func New(ur authrepo.Repo, secret string) Service { return &service{ur: ur, secret: secret} }

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" || len(req.Password) < 6 {
		return nil, "", ErrBadInput
	}

	if existing, err := s.ur.ByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", wrap(err, "hash password")
	}

	u := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		Username:     username,
		Role:         model.RoleCustomer,
		PasswordHash: hashed,
	}

	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, "", derr
		}
		return nil, "", wrap(err, "create user")
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.Role, 24)
	if err != nil {
		return nil, "", wrap(err, "issue token")
	}
	return u, token, nil
}

// mapDuplicateErr classifies unique violations into taken-field errors.
func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "users_email") || strings.Contains(msg, "email") {
			return ErrEmailTaken
		}
		if strings.Contains(cn, "users_username") || strings.Contains(msg, "username") {
			return ErrUsernameTaken
		}
		return ErrBadInput
	}
	return nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, "", ErrBadInput
	}

	u, err := s.ur.ByEmail(ctx, email)
	if err != nil {
		return nil, "", wrap(err, "lookup user")
	}
	if u == nil || !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCreds
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.Role, 24)
	if err != nil {
		return nil, "", wrap(err, "issue token")
	}
	return u, token, nil
}
