package identity

// AnonymousIdentity carries no key and always maps to the anonymous principal.
type AnonymousIdentity struct{}

// Anonymous returns the anonymous identity. It is only produced by an explicit
// call; no credential input ever falls back to it.
func Anonymous() AnonymousIdentity { return AnonymousIdentity{} }

func (AnonymousIdentity) Scheme() Scheme { return SchemeAnonymous }

func (AnonymousIdentity) Principal() Principal { return AnonymousPrincipal() }
