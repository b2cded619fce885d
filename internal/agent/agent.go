// Package agent binds a resolved identity to a replica host. It performs no
// network I/O; transports consume Agent through its accessors.
package agent

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"icauth/go-backend/internal/config"
	"icauth/go-backend/internal/identity"
	"icauth/go-backend/internal/platform/ratelimiter"
)

var ErrNilIdentity = errors.New("agent requires an identity")

// Recorder counts agents handed out; *metrics.Registry satisfies it.
type Recorder interface {
	ObserveAgent(scheme string)
}

// Agent is immutable apart from its shared request budget.
type Agent struct {
	identity identity.Identity
	host     string
	limiter  *ratelimiter.MapLimiter
}

func (a *Agent) Identity() identity.Identity { return a.identity }

func (a *Agent) Principal() identity.Principal { return a.identity.Principal() }

// Host is the normalized replica URL.
func (a *Agent) Host() string { return a.host }

// Allow reports whether a request to the agent's host fits the budget at now.
// Agents for the same host share one bucket.
func (a *Agent) Allow(now time.Time) bool {
	return a.limiter.Allow(a.host, now)
}

// Sign signs msg when the bound identity can sign.
func (a *Agent) Sign(msg []byte) ([]byte, error) {
	signer, ok := a.identity.(identity.SignIdentity)
	if !ok {
		return nil, fmt.Errorf("%w: %s identity cannot sign", identity.ErrUnsupportedScheme, a.identity.Scheme())
	}
	return signer.Sign(msg)
}

type Factory struct {
	defaultHost string
	resolver    *identity.Resolver
	limiter     *ratelimiter.MapLimiter
	logger      *slog.Logger
	recorder    Recorder
}

type Option func(*Factory)

func WithDefaultHost(host string) Option {
	return func(f *Factory) { f.defaultHost = host }
}

// WithRateLimit sets the per-host budget; non-positive values disable it.
func WithRateLimit(rps float64, burst int) Option {
	return func(f *Factory) { f.limiter = ratelimiter.New(rps, burst, 0) }
}

func WithResolver(r *identity.Resolver) Option {
	return func(f *Factory) {
		if r != nil {
			f.resolver = r
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func WithRecorder(rec Recorder) Option {
	return func(f *Factory) { f.recorder = rec }
}

// NewFactory defaults to config.DefaultHost, an unlimited budget and the
// default credential resolver.
func NewFactory(opts ...Option) (*Factory, error) {
	f := &Factory{
		defaultHost: config.DefaultHost,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	host, err := NormalizeHost(f.defaultHost)
	if err != nil {
		return nil, fmt.Errorf("default host: %w", err)
	}
	f.defaultHost = host
	if f.resolver == nil {
		if f.resolver, err = identity.NewResolver(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Build binds id to host, or to the default host when host is empty.
func (f *Factory) Build(id identity.Identity, host string) (*Agent, error) {
	if identity.IsNilIdentity(id) {
		return nil, ErrNilIdentity
	}
	target := f.defaultHost
	if host != "" {
		normalized, err := NormalizeHost(host)
		if err != nil {
			return nil, err
		}
		target = normalized
	}
	if f.recorder != nil {
		f.recorder.ObserveAgent(string(id.Scheme()))
	}
	f.logger.Debug("agent built", "scheme", id.Scheme(), "principal", id.Principal().String(), "host", target)
	return &Agent{identity: id, host: target, limiter: f.limiter}, nil
}

// BuildResolved builds an agent from a resolver result.
func (f *Factory) BuildResolved(res identity.Resolution) (*Agent, error) {
	return f.Build(res.Identity, res.Host)
}

// FromCredentials resolves req and builds the agent in one step.
func (f *Factory) FromCredentials(req identity.CredentialRequest) (*Agent, error) {
	res, err := f.resolver.Resolve(req)
	if err != nil {
		return nil, err
	}
	return f.BuildResolved(res)
}

// BuildAnonymous uses id when given and the anonymous identity otherwise.
func (f *Factory) BuildAnonymous(host string, id identity.Identity) (*Agent, error) {
	if identity.IsNilIdentity(id) {
		id = identity.Anonymous()
	}
	return f.Build(id, host)
}

func (f *Factory) DefaultHost() string { return f.defaultHost }
