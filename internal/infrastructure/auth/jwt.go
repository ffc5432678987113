package auth

import (
	"strconv"
	"time"

	"github.com/DRSN-tech/marketplace/internal/cfg"
	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/internal/usecase"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// claims — зарегистрированные поля JWT плюс тип токена.
type claims struct {
	jwt.RegisteredClaims
	TokenType usecase.TokenType `json:"token_type"`
}

// JWTIssuer выпускает и проверяет токены HS256: access и refresh с разными сроками жизни.
// В sub лежит id пользователя, в jti уникальный идентификатор токена для отзыва.
type JWTIssuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewJWTIssuer(cfg *cfg.AuthCfg) *JWTIssuer {
	return &JWTIssuer{
		secret:     cfg.JWTSecret,
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		now:        time.Now,
	}
}

func (j *JWTIssuer) Issue(user *domain.User, typ usecase.TokenType) (*usecase.IssuedToken, error) {
	const op = "JWTIssuer.Issue"

	var ttl time.Duration
	switch typ {
	case usecase.AccessToken:
		ttl = j.accessTTL
	case usecase.RefreshToken:
		ttl = j.refreshTTL
	default:
		return nil, e.Wrap(op, e.ErrInvalidToken)
	}

	now := j.now()
	expiresAt := now.Add(ttl)
	tokenID := uuid.NewString()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TokenType: typ,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.secret)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &usecase.IssuedToken{
		Token:     signed,
		ID:        tokenID,
		Type:      typ,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse проверяет подпись, издателя, срок действия и тип. Любая ошибка сводится к e.ErrInvalidToken.
func (j *JWTIssuer) Parse(token string) (*usecase.TokenClaims, error) {
	c := &claims{}

	parsed, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil || !parsed.Valid {
		return nil, e.ErrInvalidToken
	}

	switch c.TokenType {
	case usecase.AccessToken, usecase.RefreshToken:
	default:
		return nil, e.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 || c.ID == "" {
		return nil, e.ErrInvalidToken
	}

	return &usecase.TokenClaims{
		UserID:    userID,
		TokenID:   c.ID,
		Type:      c.TokenType,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
