package gotrue

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"mood-journal/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/patrickmn/go-cache"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenRevoked = errors.New("token revoked")
	ErrTokenInvalid = errors.New("token invalid")
)

// revocación sin exp conocido
const defaultRevocationTTL = 24 * time.Hour

type userFetcher interface {
	GetUser(ctx context.Context, token string) (auth.Claims, error)
}

type VerifierOptions struct {
	// JWTSecret habilita verificación local HS256. Vacío = se consulta /user.
	JWTSecret string
	// UserCacheTTL cachea respuestas de /user en modo remoto.
	UserCacheTTL time.Duration
}

// Verifier implementa auth.AuthVerifier y auth.Revoker.
type Verifier struct {
	client  userFetcher
	secret  []byte
	users   *cache.Cache
	userTTL time.Duration
	revoked *cache.Cache
	now     func() time.Time
}

var (
	_ auth.AuthVerifier = (*Verifier)(nil)
	_ auth.Revoker      = (*Verifier)(nil)
)

func NewVerifier(client *Client, opts VerifierOptions) *Verifier {
	var f userFetcher
	if client != nil {
		f = client
	}
	return newVerifier(f, opts)
}

func newVerifier(client userFetcher, opts VerifierOptions) *Verifier {
	ttl := opts.UserCacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Verifier{
		client:  client,
		secret:  []byte(strings.TrimSpace(opts.JWTSecret)),
		users:   cache.New(ttl, 2*ttl),
		userTTL: ttl,
		revoked: cache.New(defaultRevocationTTL, 10*time.Minute),
		now:     time.Now,
	}
}

// sessionClaims es el payload del access token que emite el provider.
type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	key := tokenKey(token)
	if _, revoked := v.revoked.Get(key); revoked {
		return auth.Claims{}, ErrTokenRevoked
	}

	if len(v.secret) > 0 {
		return v.verifyLocal(token)
	}
	return v.verifyRemote(ctx, key, token)
}

func (v *Verifier) verifyLocal(token string) (auth.Claims, error) {
	var sc sessionClaims
	_, err := jwt.ParseWithClaims(token, &sc, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	userID := strings.TrimSpace(sc.Subject)
	if userID == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing sub", ErrTokenInvalid)
	}

	claims := auth.Claims{
		UserID: userID,
		Email:  strings.TrimSpace(sc.Email),
	}
	if sc.ExpiresAt != nil {
		claims.ExpiresAt = sc.ExpiresAt.Time
	}
	return claims, nil
}

func (v *Verifier) verifyRemote(ctx context.Context, key, token string) (auth.Claims, error) {
	if cached, ok := v.users.Get(key); ok {
		return cached.(auth.Claims), nil
	}
	if v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}

	claims, err := v.client.GetUser(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("auth provider verify failed: %w", err)
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing user id", ErrTokenInvalid)
	}

	v.users.Set(key, claims, v.userTTL)
	return claims, nil
}

// Revoke marca el token como cerrado hasta que expire.
func (v *Verifier) Revoke(token string, claims auth.Claims) {
	token = strings.TrimSpace(token)
	if v == nil || token == "" {
		return
	}

	ttl := defaultRevocationTTL
	if !claims.ExpiresAt.IsZero() {
		if left := claims.ExpiresAt.Sub(v.now()); left > 0 {
			ttl = left
		}
	}

	key := tokenKey(token)
	v.users.Delete(key)
	v.revoked.Set(key, struct{}{}, ttl)
}

// No guardamos tokens crudos en memoria.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
