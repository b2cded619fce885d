package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultHost = "https://icp-api.io"

type Config struct {
	Identity IdentityConfig
	Agent    AgentConfig
	Log      LogConfig
}

type IdentityConfig struct {
	MnemonicScheme    string
	StrictCredentials bool
	IdentityFile      string
}

type AgentConfig struct {
	Host              string
	RequestsPerSecond float64
	Burst             int
}

type LogConfig struct {
	Level  string
	Format string
}

// FileConfig mirrors configs/icauth.yaml. Pointer fields distinguish
// "unset" from an explicit false or zero; requestsPerSecond: 0 disables
// the per-host budget.
type FileConfig struct {
	Identity FileIdentityConfig `yaml:"identity"`
	Agent    FileAgentConfig    `yaml:"agent"`
	Log      FileLogConfig      `yaml:"log"`
}

type FileIdentityConfig struct {
	MnemonicScheme    string `yaml:"mnemonicScheme"`
	StrictCredentials *bool  `yaml:"strictCredentials"`
	IdentityFile      string `yaml:"identityFile"`
}

type FileAgentConfig struct {
	Host              string   `yaml:"host"`
	RequestsPerSecond *float64 `yaml:"requestsPerSecond"`
	Burst             int      `yaml:"burst"`
}

type FileLogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Identity: IdentityConfig{MnemonicScheme: "secp256k1"},
		Agent: AgentConfig{
			Host:              DefaultHost,
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// LoadFromPath reads configPath, or the first readable default candidate
// when configPath is empty. A missing candidate is not an error; a missing
// or malformed explicit path is.
func LoadFromPath(configPath string) (Config, error) {
	cfg := Default()

	configPath = strings.TrimSpace(configPath)
	candidates := []string{configPath}
	if configPath == "" {
		candidates = []string{"configs/icauth.yaml", "icauth.yaml"}
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if configPath != "" {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
			continue
		}
		var parsed FileConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		Merge(&cfg, parsed)
		break
	}

	ApplyEnvOverrides(&cfg)
	return cfg, nil
}

func Merge(dst *Config, src FileConfig) {
	if v := strings.TrimSpace(src.Identity.MnemonicScheme); v != "" {
		dst.Identity.MnemonicScheme = v
	}
	if src.Identity.StrictCredentials != nil {
		dst.Identity.StrictCredentials = *src.Identity.StrictCredentials
	}
	if v := strings.TrimSpace(src.Identity.IdentityFile); v != "" {
		dst.Identity.IdentityFile = v
	}
	if v := strings.TrimSpace(src.Agent.Host); v != "" {
		dst.Agent.Host = v
	}
	if src.Agent.RequestsPerSecond != nil {
		dst.Agent.RequestsPerSecond = *src.Agent.RequestsPerSecond
	}
	if src.Agent.Burst > 0 {
		dst.Agent.Burst = src.Agent.Burst
	}
	if v := strings.TrimSpace(src.Log.Level); v != "" {
		dst.Log.Level = v
	}
	if v := strings.TrimSpace(src.Log.Format); v != "" {
		dst.Log.Format = v
	}
}

// ApplyEnvOverrides applies ICAUTH_* variables. Unparseable booleans are ignored.
func ApplyEnvOverrides(cfg *Config) {
	if host := strings.TrimSpace(os.Getenv("ICAUTH_HOST")); host != "" {
		cfg.Agent.Host = host
	}
	if scheme := strings.TrimSpace(os.Getenv("ICAUTH_MNEMONIC_SCHEME")); scheme != "" {
		cfg.Identity.MnemonicScheme = scheme
	}
	if level := strings.TrimSpace(os.Getenv("ICAUTH_LOG_LEVEL")); level != "" {
		cfg.Log.Level = level
	}

	raw := strings.TrimSpace(os.Getenv("ICAUTH_STRICT_CREDENTIALS"))
	if raw == "" {
		return
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return
	}
	cfg.Identity.StrictCredentials = v
}
