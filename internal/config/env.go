package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. ATHLETES_INPUT.
const EnvPrefix = "ATHLETES"

// Env holds process-level overrides read from the environment. Empty fields
// leave the pipeline file untouched.
type Env struct {
	Input          string `envconfig:"INPUT"`
	Output         string `envconfig:"OUTPUT"`
	StorageDSN     string `envconfig:"STORAGE_DSN"`
	MetricsBackend string `envconfig:"METRICS_BACKEND"`
	PushgatewayURL string `envconfig:"PUSHGATEWAY_URL"`
	DatadogAddr    string `envconfig:"DATADOG_ADDR"`
}

// LoadEnv loads dotenv files (missing files are ignored) and then decodes the
// ATHLETES_* variables. Variables already set in the process win over the
// dotenv files.
func LoadEnv(dotenv ...string) (Env, error) {
	var e Env
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return e, fmt.Errorf("load %s: %w", f, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return e, fmt.Errorf("env: %w", err)
	}
	return e, nil
}

// Apply copies the non-empty overrides into p.
func (e Env) Apply(p *Pipeline) {
	if e.Input != "" {
		p.Source.File.Path = e.Input
	}
	if e.Output != "" {
		p.Output.Path = e.Output
	}
	if e.StorageDSN != "" {
		p.Storage.DB.DSN = e.StorageDSN
	}
}
