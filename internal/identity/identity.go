// Package identity wraps the Firebase Admin SDK: verifying bearer tokens
// for the auth middleware and looking up public user profiles for the
// participants listing.
package identity

import "context"

// Identity is the decoded result of a verified bearer token.
type Identity struct {
	UID   string
	Email string
	Name  string
}

// TokenVerifier is the single point of contact with the identity provider
// for request authentication. Production uses FirebaseVerifier; tests
// substitute a fake.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Profile is the public subset of a provider user record.
type Profile struct {
	UID         string
	DisplayName string
	Email       string
	PhotoURL    string
}

// ProfileLookup batch-resolves provider UIDs to profiles. UIDs the provider
// does not know are simply absent from the result.
type ProfileLookup interface {
	GetProfiles(ctx context.Context, uids []string) (map[string]Profile, error)
}
