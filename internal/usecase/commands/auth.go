package commands

import (
	"context"

	"coworking-backend/internal/domain/user"
	"coworking-backend/internal/infra"
	"coworking-backend/internal/pkg/errs"
	"coworking-backend/internal/pkg/jwt"
	"coworking-backend/internal/pkg/password"
	"coworking-backend/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken         = errs.New("email already registered")
	ErrInvalidCredentials = errs.New("incorrect email or password")
	ErrUserInactive       = errs.New("user account is inactive")
)

type RegisterRequest struct {
	Email    string
	Password string
	FullName string
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	TokenType   string
}

type AuthCommands interface {
	Register(ctx context.Context, req RegisterRequest) (uuid.UUID, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow shared.UnitOfWork
	jwt *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, jwtSvc *jwt.Service) AuthCommands {
	return &authCommandsImpl{uow: uow, jwt: jwtSvc}
}

func (c *authCommandsImpl) Register(ctx context.Context, req RegisterRequest) (uuid.UUID, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return uuid.Nil, err
	}
	hashed, err := password.Hash(req.Password)
	if err != nil {
		return uuid.Nil, err
	}
	entity, err := user.NewUser(email, hashed, req.FullName, user.RoleUser)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, derr := tx.Users().Create(ctx, entity)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrEmailTaken
			}
			return derr
		}
		id = created
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Login verifies the password against the stored hash and issues a bearer
// token. Unknown email and wrong password return the same error.
func (c *authCommandsImpl) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	var snap *shared.AuthSnapshot
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, derr := tx.Users().FindAuthByEmail(ctx, email.String())
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrInvalidCredentials
			}
			return derr
		}
		snap = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !password.Verify(snap.HashedPassword, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !snap.IsActive {
		return nil, ErrUserInactive
	}

	role, err := user.NewRole(snap.Role)
	if err != nil {
		return nil, err
	}
	token, err := c.jwt.GenerateToken(snap.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "generate access token")
	}
	return &LoginResult{AccessToken: token, TokenType: "bearer"}, nil
}
