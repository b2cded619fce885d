package identity

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
)

// CredentialKind names the request field an identity was resolved from.
type CredentialKind string

const (
	KindIdentity CredentialKind = "identity"
	KindMnemonic CredentialKind = "mnemonic"
	KindSeed     CredentialKind = "seed"
	KindNone     CredentialKind = "none"
)

// Resolution outcomes reported to a Recorder.
const (
	OutcomePassthrough = "passthrough"
	OutcomeDerived     = "derived"
	OutcomeMissing     = "missing"
	OutcomeAmbiguous   = "ambiguous"
	OutcomeInvalid     = "invalid"
)

// CredentialRequest carries at most one credential plus an optional host.
// Empty strings and a nil Identity count as absent.
type CredentialRequest struct {
	Mnemonic string
	Seed     string
	Identity Identity
	Host     string
}

// Resolution is a ready-to-use identity and the host it should talk to.
type Resolution struct {
	Identity Identity
	Host     string
	Source   CredentialKind
}

// Recorder observes resolver outcomes; see internal/platform/metrics.
type Recorder interface {
	ObserveDerivation(scheme, source string, ok bool)
	ObserveResolution(source, outcome string)
}

// Resolver turns a CredentialRequest into an Identity. It holds no mutable
// state and is safe for concurrent use.
type Resolver struct {
	mnemonicScheme Scheme
	strict         bool
	logger         *slog.Logger
	recorder       Recorder
}

type Option func(*Resolver)

// WithMnemonicScheme selects the scheme mnemonics are derived into.
func WithMnemonicScheme(scheme Scheme) Option {
	return func(r *Resolver) { r.mnemonicScheme = scheme }
}

// WithStrictCredentials rejects requests carrying more than one credential.
func WithStrictCredentials() Option {
	return func(r *Resolver) { r.strict = true }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithRecorder(rec Recorder) Option {
	return func(r *Resolver) { r.recorder = rec }
}

// NewResolver defaults to secp256k1 for mnemonics and first-match priority.
func NewResolver(opts ...Option) (*Resolver, error) {
	r := &Resolver{
		mnemonicScheme: SchemeSecp256k1,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.mnemonicScheme != SchemeEd25519 && r.mnemonicScheme != SchemeSecp256k1 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, r.mnemonicScheme)
	}
	return r, nil
}

var defaultResolver = &Resolver{
	mnemonicScheme: SchemeSecp256k1,
	logger:         slog.New(slog.DiscardHandler),
}

// ResolveCredential resolves with the default resolver: secp256k1 mnemonics,
// first matching credential wins.
func ResolveCredential(req CredentialRequest) (Resolution, error) {
	return defaultResolver.Resolve(req)
}

func (r *Resolver) MnemonicScheme() Scheme { return r.mnemonicScheme }

// Resolve picks the first present credential in the order identity,
// mnemonic, seed, and performs at most one derivation.
func (r *Resolver) Resolve(req CredentialRequest) (Resolution, error) {
	kinds := req.credentials()
	if len(kinds) == 0 {
		r.observeResolution(KindNone, OutcomeMissing)
		r.logger.Warn("credential rejected", "source", KindNone, "error", ErrMissingCredential)
		return Resolution{}, ErrMissingCredential
	}
	if r.strict && len(kinds) > 1 {
		err := fmt.Errorf("%w: %s", ErrAmbiguousCredential, joinKinds(kinds))
		r.observeResolution(KindNone, OutcomeAmbiguous)
		r.logger.Warn("credential rejected", "source", joinKinds(kinds), "error", err)
		return Resolution{}, err
	}

	source := kinds[0]
	if source == KindIdentity {
		r.observeResolution(source, OutcomePassthrough)
		r.logger.Debug("credential resolved",
			"source", source,
			"scheme", req.Identity.Scheme(),
			"principal", req.Identity.Principal().String(),
		)
		return Resolution{Identity: req.Identity, Host: req.Host, Source: source}, nil
	}

	id, scheme, err := r.derive(source, req)
	r.observeDerivation(scheme, source, err == nil)
	if err != nil {
		r.observeResolution(source, OutcomeInvalid)
		r.logger.Warn("credential rejected", "source", source, "scheme", scheme, "error", err)
		return Resolution{}, err
	}
	r.observeResolution(source, OutcomeDerived)
	r.logger.Debug("credential resolved",
		"source", source,
		"scheme", scheme,
		"principal", id.Principal().String(),
	)
	return Resolution{Identity: id, Host: req.Host, Source: source}, nil
}

func (r *Resolver) derive(source CredentialKind, req CredentialRequest) (Identity, Scheme, error) {
	switch source {
	case KindMnemonic:
		id, err := MnemonicToScheme(req.Mnemonic, r.mnemonicScheme)
		if err != nil {
			return nil, r.mnemonicScheme, err
		}
		return id, r.mnemonicScheme, nil
	case KindSeed:
		id, err := SeedToIdentity(req.Seed)
		if err != nil {
			return nil, SchemeEd25519, err
		}
		return id, SchemeEd25519, nil
	default:
		return nil, "", errors.New("unknown credential source: " + string(source))
	}
}

func (req CredentialRequest) credentials() []CredentialKind {
	kinds := make([]CredentialKind, 0, 3)
	if !IsNilIdentity(req.Identity) {
		kinds = append(kinds, KindIdentity)
	}
	if !IsMnemonicEmpty(req.Mnemonic) {
		kinds = append(kinds, KindMnemonic)
	}
	if !IsSeedEmpty(req.Seed) {
		kinds = append(kinds, KindSeed)
	}
	return kinds
}

func (r *Resolver) observeDerivation(scheme Scheme, source CredentialKind, ok bool) {
	if r.recorder != nil {
		r.recorder.ObserveDerivation(string(scheme), string(source), ok)
	}
}

func (r *Resolver) observeResolution(source CredentialKind, outcome string) {
	if r.recorder != nil {
		r.recorder.ObserveResolution(string(source), outcome)
	}
}

// IsNilIdentity reports whether id is nil or wraps a nil pointer, as left
// behind by a failed derivation assigned to an Identity variable.
func IsNilIdentity(id Identity) bool {
	if id == nil {
		return true
	}
	v := reflect.ValueOf(id)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func joinKinds(kinds []CredentialKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, "+")
}
