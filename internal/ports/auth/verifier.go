package auth

import "context"

// AuthVerifier verifica un token de sesión y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Revoker invalida localmente un token hasta su expiración.
type Revoker interface {
	Revoke(token string, claims Claims)
}
