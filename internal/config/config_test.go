package config

import (
	"os"
	"path/filepath"
	"testing"
)

func boolPtr(v bool) *bool {
	return &v
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ICAUTH_HOST", "ICAUTH_MNEMONIC_SCHEME", "ICAUTH_STRICT_CREDENTIALS", "ICAUTH_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestMergeOverridesOnlySetFields(t *testing.T) {
	dst := Default()
	Merge(&dst, FileConfig{
		Identity: FileIdentityConfig{MnemonicScheme: "ed25519", StrictCredentials: boolPtr(true)},
		Agent:    FileAgentConfig{Host: "http://127.0.0.1:4943", Burst: 5},
	})

	if dst.Identity.MnemonicScheme != "ed25519" {
		t.Fatalf("expected ed25519, got %q", dst.Identity.MnemonicScheme)
	}
	if !dst.Identity.StrictCredentials {
		t.Fatal("expected strictCredentials=true after merge")
	}
	if dst.Agent.Host != "http://127.0.0.1:4943" || dst.Agent.Burst != 5 {
		t.Fatalf("unexpected agent config %+v", dst.Agent)
	}
	if dst.Agent.RequestsPerSecond != Default().Agent.RequestsPerSecond {
		t.Fatalf("unset rps should keep default, got %v", dst.Agent.RequestsPerSecond)
	}
	if dst.Log != Default().Log {
		t.Fatalf("unset log section should keep defaults, got %+v", dst.Log)
	}
}

func TestMergeDoesNotResetStrictWhenUnset(t *testing.T) {
	dst := Default()
	dst.Identity.StrictCredentials = true
	Merge(&dst, FileConfig{Identity: FileIdentityConfig{MnemonicScheme: "secp256k1"}})
	if !dst.Identity.StrictCredentials {
		t.Fatal("strictCredentials should survive an unset yaml field")
	}
}

func TestLoadFromPathReadsYAMLAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "icauth.yaml")
	body := "identity:\n  mnemonicScheme: ed25519\nagent:\n  host: localhost:4943\n  requestsPerSecond: 2.5\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ICAUTH_HOST", "https://ic0.app")
	t.Setenv("ICAUTH_STRICT_CREDENTIALS", "true")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Identity.MnemonicScheme != "ed25519" || cfg.Log.Level != "debug" || cfg.Agent.RequestsPerSecond != 2.5 {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if cfg.Agent.Host != "https://ic0.app" {
		t.Fatalf("env host should win over yaml, got %q", cfg.Agent.Host)
	}
	if !cfg.Identity.StrictCredentials {
		t.Fatal("env strict flag should be applied")
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	clearEnv(t)
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing explicit path")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("identity: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestApplyEnvOverridesIgnoresBadBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("ICAUTH_STRICT_CREDENTIALS", "sometimes")
	t.Setenv("ICAUTH_MNEMONIC_SCHEME", "ed25519")
	cfg := Default()
	ApplyEnvOverrides(&cfg)
	if cfg.Identity.StrictCredentials {
		t.Fatal("unparseable bool should be ignored")
	}
	if cfg.Identity.MnemonicScheme != "ed25519" {
		t.Fatalf("expected scheme override, got %q", cfg.Identity.MnemonicScheme)
	}
}

func TestLoadFromPathAllowsDisablingRateLimit(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "icauth.yaml")
	if err := os.WriteFile(path, []byte("agent:\n  requestsPerSecond: 0\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Agent.RequestsPerSecond != 0 {
		t.Fatalf("explicit zero rps should disable the budget, got %v", cfg.Agent.RequestsPerSecond)
	}
	if cfg.Agent.Burst != Default().Agent.Burst {
		t.Fatalf("unset burst should keep default, got %d", cfg.Agent.Burst)
	}
}
