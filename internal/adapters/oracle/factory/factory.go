package factory

import (
	"context"
	"fmt"
	"strings"

	"mood-journal/internal/adapters/oracle/gemini"
	"mood-journal/internal/adapters/oracle/ollama"
	"mood-journal/internal/config"
	"mood-journal/internal/ports/oracle"
)

// New elige el adapter según ORACLE_PROVIDER.
// "none" devuelve (nil, nil): el workflow reporta cada anotación como fallida.
func New(ctx context.Context, cfg config.OracleConfig) (oracle.Annotator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "ollama", "":
		c, err := ollama.NewClient(ollama.Config{
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			APIKey:      cfg.APIKey,
			Timeout:     cfg.Timeout,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case "gemini":
		c, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Timeout:     cfg.Timeout,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("oracle: unknown provider %q", cfg.Provider)
	}
}
