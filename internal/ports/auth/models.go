package auth

import "time"

// Claims representa la identidad extraída del token de sesión.
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time // zero si el provider no lo informa
}
