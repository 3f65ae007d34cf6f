package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

// Env is the deployment configuration read from the process environment.
// It selects which collaborator adapter backs the calendar and where it reads from.
type Env struct {
	Provider       string `env:"MMCAL_PROVIDER" envDefault:"bundle"`
	RemoteURL      string `env:"MMCAL_REMOTE_URL"`
	RemoteToken    string `env:"MMCAL_REMOTE_TOKEN"`
	BundleSource   string `env:"MMCAL_BUNDLE_SOURCE"`
	Language       string `env:"MMCAL_LANG" envDefault:"en"`
	ServerPort     string `env:"MMCAL_SERVER_PORT" envDefault:"18081"`
	HTTPTimeoutSec int    `env:"MMCAL_HTTP_TIMEOUT_SEC" envDefault:"15"`
}

// LoadEnv parses the environment into an Env.
func LoadEnv() (Env, error) {
	e := Env{}
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("%s: %w", ErrEnvParse, err)
	}
	return e, nil
}

// HTTPTimeout returns the client timeout for remote calls.
// Non-positive values fall back to DefaultHTTPTimeoutSec.
func (e Env) HTTPTimeout() time.Duration {
	sec := e.HTTPTimeoutSec
	if sec <= 0 {
		sec = DefaultHTTPTimeoutSec
	}
	return time.Duration(sec) * time.Second
}
