package gotrue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mood-journal/internal/platform/httpclient"
	"mood-journal/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("auth provider not configured")
	ErrUnauthorized  = errors.New("auth provider unauthorized")
	ErrUpstream      = errors.New("auth provider upstream error")
)

// Config del cliente contra la API de auth del backend gestionado
// (GoTrue-compatible: /otp, /user, /logout).
type Config struct {
	BaseURL string // ej: https://<project>.supabase.co/auth/v1
	APIKey  string // se manda en el header "apikey"
	Timeout time.Duration
}

type Client struct {
	http       *httpclient.Client
	configured bool
}

var _ auth.Provider = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.New(httpclient.Options{
		BaseURL: cfg.BaseURL,
		Timeout: timeout,
		Headers: map[string]string{"apikey": strings.TrimSpace(cfg.APIKey)},
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		http:       hc,
		configured: hc.BaseURL() != "" && strings.TrimSpace(cfg.APIKey) != "",
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.configured
}

type otpRequest struct {
	Email      string `json:"email"`
	CreateUser bool   `json:"create_user"`
}

// SendMagicLink pide al provider que mande el email con el link de acceso.
// El provider crea el usuario si no existe.
func (c *Client) SendMagicLink(ctx context.Context, email, redirectTo string) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	path := "/otp"
	if strings.TrimSpace(redirectTo) != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}

	err := c.http.DoJSON(ctx, http.MethodPost, path, nil, otpRequest{
		Email:      strings.TrimSpace(email),
		CreateUser: true,
	}, nil)
	return mapErr(err)
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// GetUser resuelve el usuario dueño de un access token.
func (c *Client) GetUser(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var out userResponse
	if err := c.http.DoJSON(ctx, http.MethodGet, "/user", bearer(token), nil, &out); err != nil {
		return auth.Claims{}, mapErr(err)
	}

	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing id", ErrUpstream)
	}

	return auth.Claims{
		UserID: out.ID,
		Email:  strings.TrimSpace(out.Email),
	}, nil
}

// SignOut revoca la sesión del lado del provider.
func (c *Client) SignOut(ctx context.Context, token string) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}
	return mapErr(c.http.DoJSON(ctx, http.MethodPost, "/logout", bearer(token), nil, nil))
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + strings.TrimSpace(token)}
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch httpclient.StatusOf(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
}
