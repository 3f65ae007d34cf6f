package provider

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/zalando/go-keyring"
)

// ResolveToken returns the bearer token of the remote service.
// The environment wins; otherwise the OS keyring entry for the service URL is used.
func ResolveToken(env config.Env) string {
	if env.RemoteToken != "" {
		return env.RemoteToken
	}
	if env.RemoteURL == "" {
		return ""
	}

	tok, err := keyring.Get(config.KeyringService, env.RemoteURL)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			slog.Warn(config.MsgTokenMissing,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompProvider)
		} else {
			slog.Debug(config.MsgTokenMissing, config.LogKeyComponent, config.CompProvider)
		}
		return ""
	}
	return tok
}

// SaveToken stores the token for the service URL. An empty token removes the entry.
func SaveToken(remoteURL, token string) error {
	if token == "" {
		err := keyring.Delete(config.KeyringService, remoteURL)
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%s: %w", config.ErrKeyringSave, err)
		}
		return nil
	}
	if err := keyring.Set(config.KeyringService, remoteURL, token); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringSave, err)
	}
	return nil
}
