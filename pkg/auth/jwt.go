package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
)

// Erros específicos
var (
	ErrInvalidToken   = errors.New("token inválido")
	ErrExpiredToken   = errors.New("token expirado")
	ErrInvalidClaims  = errors.New("claims inválidas")
	ErrMissingJWTKey  = errors.New("chave secreta JWT não configurada")
	ErrRefreshExpired = errors.New("prazo de renovação do token expirado")
)

const (
	// Issuer identifica os tokens emitidos pela API
	Issuer = "erp-estoque-api"
	// DefaultExpiration é usada quando nenhuma duração é configurada
	DefaultExpiration = 24 * time.Hour
	// RefreshWindow é por quanto tempo depois de expirado um token ainda pode ser renovado
	RefreshWindow = 7 * 24 * time.Hour
)

// JWTClaims representa as claims personalizadas do token JWT
type JWTClaims struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService implementa serviços relacionados a tokens JWT
type JWTService struct {
	secretKey  []byte
	expiration time.Duration
	now        func() time.Time
}

// NewJWTService cria uma nova instância de JWTService
func NewJWTService(secretKey string, expiration time.Duration) (*JWTService, error) {
	if secretKey == "" {
		return nil, ErrMissingJWTKey
	}
	if expiration <= 0 {
		expiration = DefaultExpiration
	}

	return &JWTService{
		secretKey:  []byte(secretKey),
		expiration: expiration,
		now:        time.Now,
	}, nil
}

// Expiration retorna a validade dos tokens emitidos
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// GenerateToken gera um token JWT para o usuário com o papel informado
func (s *JWTService) GenerateToken(u *user.User, role user.Role) (string, error) {
	now := s.now()

	claims := JWTClaims{
		UserID:   u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
		Name:     u.FullName,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
			Subject:   u.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return s.secretKey, nil
}

// ValidateToken valida um token JWT e retorna as claims se for válido
func (s *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, s.keyFunc,
		jwt.WithTimeFunc(s.now), jwt.WithIssuer(Issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.UserID == "" || claims.TenantID == "" {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// ParseForRefresh aceita tokens expirados há menos de RefreshWindow.
// As claims devolvidas servem apenas para identificar o usuário; o novo token é emitido por GenerateToken.
func (s *JWTService) ParseForRefresh(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, s.keyFunc, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || claims.UserID == "" || claims.Issuer != Issuer {
		return nil, ErrInvalidClaims
	}
	if claims.ExpiresAt == nil || s.now().After(claims.ExpiresAt.Add(RefreshWindow)) {
		return nil, ErrRefreshExpired
	}

	return claims, nil
}
