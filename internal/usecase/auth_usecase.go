package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/logger"
)

const (
	minPasswordLength = 8
	// maxPasswordLength — предел bcrypt в байтах.
	maxPasswordLength = 72
)

// AuthUseCase реализует регистрацию, вход и определение пользователя по токену.
type AuthUseCase struct {
	userRepo UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	denylist TokenDenylist
	logger   logger.Logger

	// dummyHash сравнивается с паролем, если пользователь не найден,
	// чтобы время ответа не выдавало существование логина.
	dummyHash string
}

func NewAuthUC(
	userRepo UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	denylist TokenDenylist,
	logger logger.Logger,
) (*AuthUseCase, error) {
	dummyHash, err := hasher.Hash("marketplace-dummy-password")
	if err != nil {
		return nil, e.Wrap("NewAuthUC", err)
	}

	return &AuthUseCase{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		denylist:  denylist,
		logger:    logger,
		dummyHash: dummyHash,
	}, nil
}

// Register создаёт пользователя и сразу выдаёт ему пару токенов.
func (a *AuthUseCase) Register(ctx context.Context, req *RegisterReq) (*AuthRes, error) {
	const op = "AuthUseCase.Register"

	user, password, err := a.validateRegistration(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	user.PasswordHash, err = a.hasher.Hash(password)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Уникальность username и email гарантирует хранилище
	created, err := a.userRepo.Create(ctx, user)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	a.logger.Infof("user registered: id=%d username=%s role=%s", created.ID, created.Username, created.Role)

	return a.issue(op, created)
}

// Authenticate проверяет логин и пароль. Неизвестный логин и неверный пароль неразличимы.
func (a *AuthUseCase) Authenticate(ctx context.Context, req *LoginReq) (*AuthRes, error) {
	const op = "AuthUseCase.Authenticate"

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, e.Wrap(op, e.ErrInvalidCredentials)
	}

	user, err := a.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			_ = a.hasher.Compare(a.dummyHash, req.Password)
			return nil, e.Wrap(op, e.ErrInvalidCredentials)
		}
		return nil, e.Wrap(op, err)
	}

	if err := a.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, e.Wrap(op, err)
	}

	return a.issue(op, user)
}

// Refresh обменивает действующий refresh-токен на новую пару.
// Использованный refresh-токен отзывается, повторно предъявить его нельзя.
func (a *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*AuthRes, error) {
	const op = "AuthUseCase.Refresh"

	claims, err := a.verify(ctx, refreshToken, RefreshToken)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	user, err := a.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.Wrap(op, e.ErrInvalidToken)
		}
		return nil, e.Wrap(op, err)
	}

	if err := a.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return nil, e.Wrap(op, err)
	}

	a.logger.Debugf("refresh token rotated: user_id=%d", user.ID)

	return a.issue(op, user)
}

// ResolveIdentity проверяет токен доступа и возвращает текущего пользователя.
func (a *AuthUseCase) ResolveIdentity(ctx context.Context, token string) (*Identity, error) {
	const op = "AuthUseCase.ResolveIdentity"

	claims, err := a.verify(ctx, token, AccessToken)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	user, err := a.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.Wrap(op, e.ErrInvalidToken)
		}
		return nil, e.Wrap(op, err)
	}

	identity := NewIdentity(user)
	return &identity, nil
}

// Logout отзывает токен доступа и, если передан, refresh-токен того же пользователя.
func (a *AuthUseCase) Logout(ctx context.Context, req *LogoutReq) error {
	const op = "AuthUseCase.Logout"

	access, err := a.tokens.Parse(req.AccessToken)
	if err != nil || access.Type != AccessToken {
		return e.Wrap(op, e.ErrInvalidToken)
	}

	if req.RefreshToken != "" {
		refresh, err := a.tokens.Parse(req.RefreshToken)
		if err != nil || refresh.Type != RefreshToken || refresh.UserID != access.UserID {
			return e.Wrap(op, e.ErrInvalidToken)
		}

		if err := a.denylist.Revoke(ctx, refresh.TokenID, refresh.ExpiresAt); err != nil {
			return e.Wrap(op, err)
		}
	}

	if err := a.denylist.Revoke(ctx, access.TokenID, access.ExpiresAt); err != nil {
		return e.Wrap(op, err)
	}

	a.logger.Infof("token revoked: user_id=%d", access.UserID)
	return nil
}

// verify разбирает токен ожидаемого типа и проверяет, что он не отозван.
func (a *AuthUseCase) verify(ctx context.Context, token string, typ TokenType) (*TokenClaims, error) {
	claims, err := a.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	if claims.Type != typ {
		return nil, e.ErrInvalidToken
	}

	revoked, err := a.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, e.ErrInvalidToken
	}

	return claims, nil
}

func (a *AuthUseCase) issue(op string, user *domain.User) (*AuthRes, error) {
	access, err := a.tokens.Issue(user, AccessToken)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	refresh, err := a.tokens.Issue(user, RefreshToken)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewAuthRes(access, refresh, NewIdentity(user)), nil
}

// validateRegistration нормализует поля запроса и собирает пользователя без хэша пароля.
func (a *AuthUseCase) validateRegistration(req *RegisterReq) (*domain.User, string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, "", e.ErrUsernameRequired
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, "", e.ErrNameRequired
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !isValidEmail(email) {
		return nil, "", e.ErrInvalidEmail
	}

	if len(req.Password) < minPasswordLength {
		return nil, "", e.ErrPasswordTooShort
	}
	if len(req.Password) > maxPasswordLength {
		return nil, "", e.ErrPasswordTooLong
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, "", err
	}

	return domain.NewUser(username, email, name, role, ""), req.Password, nil
}

// isValidEmail — простая проверка: одна '@', непустые части, в домене есть точка.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}

	domainParts := strings.Split(parts[1], ".")
	return len(domainParts) >= 2 && domainParts[0] != "" && domainParts[len(domainParts)-1] != ""
}
