package auth

import "context"

// Provider es el servicio externo que hace el handshake passwordless.
// Este servicio solo dispara el envío del link y cierra sesiones.
type Provider interface {
	SendMagicLink(ctx context.Context, email, redirectTo string) error
	SignOut(ctx context.Context, token string) error
}
