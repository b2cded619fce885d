package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"icauth/go-backend/internal/agent"
	"icauth/go-backend/internal/config"
	"icauth/go-backend/internal/identity"
	"icauth/go-backend/internal/platform/metrics"
	"icauth/go-backend/internal/platform/privacylog"
)

// appContext is built once per invocation before any subcommand runs.
type appContext struct {
	configPath string
	logLevel   string
	metricsOut string

	cfg      config.Config
	logger   *slog.Logger
	metrics  *metrics.Registry
	resolver *identity.Resolver
	factory  *agent.Factory
}

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	app := &appContext{}
	root := &cobra.Command{
		Use:          "icauth",
		Short:        "Derive and resolve Internet Computer identities",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.flushMetrics()
		},
	}

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default configs/icauth.yaml when present)")
	root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&app.metricsOut, "metrics-out", "", "write prometheus textfile metrics to this path on exit")

	root.AddCommand(
		validateCmd(),
		deriveCmd(app),
		resolveCmd(app),
		anonymousCmd(app),
		mnemonicCmd(),
		exportCmd(app),
	)
	return root
}

func (a *appContext) init(cmd *cobra.Command) error {
	cfg, err := config.LoadFromPath(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	level, err := privacylog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = privacylog.NewLogger(cmd.ErrOrStderr(), level, cfg.Log.Format)
	a.metrics = metrics.New()

	scheme, err := identity.ParseScheme(cfg.Identity.MnemonicScheme)
	if err != nil {
		return err
	}
	a.resolver, err = a.newResolver(scheme, cfg.Identity.StrictCredentials)
	if err != nil {
		return err
	}
	a.factory, err = agent.NewFactory(
		agent.WithDefaultHost(cfg.Agent.Host),
		agent.WithRateLimit(cfg.Agent.RequestsPerSecond, cfg.Agent.Burst),
		agent.WithResolver(a.resolver),
		agent.WithLogger(a.logger),
		agent.WithRecorder(a.metrics),
	)
	return err
}

func (a *appContext) newResolver(scheme identity.Scheme, strict bool) (*identity.Resolver, error) {
	opts := []identity.Option{
		identity.WithMnemonicScheme(scheme),
		identity.WithLogger(a.logger),
		identity.WithRecorder(a.metrics),
	}
	if strict {
		opts = append(opts, identity.WithStrictCredentials())
	}
	return identity.NewResolver(opts...)
}

func (a *appContext) flushMetrics() error {
	if a.metricsOut == "" || a.metrics == nil {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.metricsOut); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// credentialFlags are shared by derive, resolve and export.
type credentialFlags struct {
	mnemonic string
	seed     string
}

func (c *credentialFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.mnemonic, "mnemonic", "", "BIP-39 mnemonic (or ICAUTH_MNEMONIC)")
	cmd.Flags().StringVar(&c.seed, "seed", "", "raw seed of 1-32 bytes (or ICAUTH_SEED)")
}

func (c *credentialFlags) request() identity.CredentialRequest {
	return identity.CredentialRequest{
		Mnemonic: flagOrEnv(c.mnemonic, "ICAUTH_MNEMONIC"),
		Seed:     flagOrEnv(c.seed, "ICAUTH_SEED"),
	}
}

func flagOrEnv(v, key string) string {
	if v != "" {
		return v
	}
	return os.Getenv(key)
}

func printIdentity(cmd *cobra.Command, id identity.Identity) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scheme: %s\n", id.Scheme())
	fmt.Fprintf(out, "principal: %s\n", id.Principal())
	signer, ok := id.(identity.SignIdentity)
	if !ok {
		return nil
	}
	keyID, err := identity.KeyID(signer)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "public_key: %x\n", signer.DER())
	fmt.Fprintf(out, "key_id: %s\n", keyID)
	return nil
}
