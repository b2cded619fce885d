package agent

import (
	"errors"
	"testing"
	"time"

	"icauth/go-backend/internal/identity"
)

const mnemonic = "crazy world recipe sad gentle inject box aisle item tired glass merit dinosaur author gorilla"

type countingRecorder struct {
	schemes []string
}

func (c *countingRecorder) ObserveAgent(scheme string) { c.schemes = append(c.schemes, scheme) }

func TestFactoryDefaultsToPublicBoundary(t *testing.T) {
	f, err := NewFactory()
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	id, err := identity.SeedToIdentity("valid-seed")
	if err != nil {
		t.Fatalf("seed identity: %v", err)
	}
	a, err := f.Build(id, "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if a.Host() != "https://icp-api.io" {
		t.Fatalf("unexpected default host %q", a.Host())
	}
	if a.Identity() != identity.Identity(id) {
		t.Fatal("agent should keep the supplied identity")
	}
	if !a.Allow(time.Now()) {
		t.Fatal("unlimited factory should allow requests")
	}
}

func TestFactoryRejectsBadInput(t *testing.T) {
	if _, err := NewFactory(WithDefaultHost("ftp://nowhere")); !errors.Is(err, ErrInvalidHost) {
		t.Fatalf("expected ErrInvalidHost, got %v", err)
	}
	f, err := NewFactory()
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	if _, err := f.Build(nil, ""); !errors.Is(err, ErrNilIdentity) {
		t.Fatalf("expected ErrNilIdentity, got %v", err)
	}
	if _, err := f.Build(identity.Anonymous(), "https://icp-api.io/api"); !errors.Is(err, ErrInvalidHost) {
		t.Fatalf("expected ErrInvalidHost, got %v", err)
	}
}

func TestFromCredentialsUsesResolver(t *testing.T) {
	rec := &countingRecorder{}
	f, err := NewFactory(WithRecorder(rec))
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	a, err := f.FromCredentials(identity.CredentialRequest{Mnemonic: mnemonic, Host: "/ip4/127.0.0.1/tcp/4943/http"})
	if err != nil {
		t.Fatalf("from credentials: %v", err)
	}
	if a.Identity().Scheme() != identity.SchemeSecp256k1 {
		t.Fatalf("expected secp256k1 identity, got %s", a.Identity().Scheme())
	}
	if a.Host() != "http://127.0.0.1:4943" {
		t.Fatalf("unexpected host %q", a.Host())
	}
	if len(rec.schemes) != 1 || rec.schemes[0] != "secp256k1" {
		t.Fatalf("unexpected recorded schemes %v", rec.schemes)
	}

	if _, err := f.FromCredentials(identity.CredentialRequest{}); !errors.Is(err, identity.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if _, err := f.FromCredentials(identity.CredentialRequest{Mnemonic: "%$%#@"}); !errors.Is(err, identity.ErrInvalidMnemonic) {
		t.Fatalf("expected ErrInvalidMnemonic, got %v", err)
	}
}

func TestFromCredentialsWithEd25519Resolver(t *testing.T) {
	r, err := identity.NewResolver(identity.WithMnemonicScheme(identity.SchemeEd25519))
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	f, err := NewFactory(WithResolver(r))
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	a, err := f.FromCredentials(identity.CredentialRequest{Mnemonic: mnemonic})
	if err != nil {
		t.Fatalf("from credentials: %v", err)
	}
	if a.Identity().Scheme() != identity.SchemeEd25519 {
		t.Fatalf("expected ed25519 identity, got %s", a.Identity().Scheme())
	}
}

func TestBuildAnonymous(t *testing.T) {
	f, err := NewFactory()
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	a, err := f.BuildAnonymous("", nil)
	if err != nil {
		t.Fatalf("build anonymous: %v", err)
	}
	if a.Principal().String() != "2vxsx-fae" {
		t.Fatalf("unexpected principal %s", a.Principal())
	}
	if _, err := a.Sign([]byte("m")); !errors.Is(err, identity.ErrUnsupportedScheme) {
		t.Fatalf("anonymous agent cannot sign, got %v", err)
	}

	id, _ := identity.SeedToIdentity("valid-seed")
	b, err := f.BuildAnonymous("localhost:4943", id)
	if err != nil {
		t.Fatalf("build anonymous with identity: %v", err)
	}
	if !b.Principal().Equal(id.Principal()) || b.Host() != "http://localhost:4943" {
		t.Fatalf("unexpected agent %s at %s", b.Principal(), b.Host())
	}
	sig, err := b.Sign([]byte("m"))
	if err != nil || !identity.Verify(id.Scheme(), id.PublicKey(), []byte("m"), sig) {
		t.Fatalf("signing through agent failed: %v", err)
	}
}

func TestAgentsShareHostBudget(t *testing.T) {
	f, err := NewFactory(WithRateLimit(1, 1))
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	a, _ := f.BuildAnonymous("https://icp-api.io", nil)
	b, _ := f.BuildAnonymous("icp-api.io", nil)
	c, _ := f.BuildAnonymous("localhost:4943", nil)

	now := time.Unix(1_700_000_000, 0)
	if !a.Allow(now) {
		t.Fatal("first request should pass")
	}
	if b.Allow(now) {
		t.Fatal("agents for the same host share a bucket")
	}
	if !c.Allow(now) {
		t.Fatal("a different host has its own bucket")
	}
	if !b.Allow(now.Add(time.Second)) {
		t.Fatal("bucket should refill")
	}
}

func TestFactoryRejectsNilPointerIdentity(t *testing.T) {
	f, err := NewFactory()
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	var ed *identity.Ed25519Identity
	if _, err := f.Build(ed, ""); !errors.Is(err, ErrNilIdentity) {
		t.Fatalf("expected ErrNilIdentity, got %v", err)
	}
	a, err := f.BuildAnonymous("", ed)
	if err != nil {
		t.Fatalf("build anonymous: %v", err)
	}
	if !a.Principal().IsAnonymous() {
		t.Fatalf("nil pointer identity should fall back to anonymous, got %s", a.Principal())
	}
	if _, err := f.FromCredentials(identity.CredentialRequest{Identity: ed}); !errors.Is(err, identity.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestZeroRateDisablesHostBudget(t *testing.T) {
	f, err := NewFactory(WithRateLimit(0, 40))
	if err != nil {
		t.Fatalf("new factory: %v", err)
	}
	a, _ := f.BuildAnonymous("", nil)
	now := time.Unix(1_700_000_000, 0)
	for i := 0; i < 100; i++ {
		if !a.Allow(now) {
			t.Fatalf("request %d limited with budget disabled", i)
		}
	}
}
