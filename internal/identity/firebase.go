package identity

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier verifies ID tokens and resolves user profiles through
// the Firebase Admin SDK. One instance is created at startup and shared
// across requests.
type FirebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier initializes the Firebase app. Credentials come from
// the FIREBASE_SERVICE_ACCOUNT_JSON environment variable (Base64 encoded
// service account key), falling back to the file named by
// FIREBASE_SERVICE_ACCOUNT_PATH.
func NewFirebaseVerifier(ctx context.Context) (*FirebaseVerifier, error) {
	var opt option.ClientOption

	if encoded := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); encoded != "" {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIREBASE_SERVICE_ACCOUNT_JSON: %w", err)
		}
		opt = option.WithCredentialsJSON(decoded)
	} else {
		path := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if path == "" {
			return nil, fmt.Errorf("neither FIREBASE_SERVICE_ACCOUNT_JSON nor FIREBASE_SERVICE_ACCOUNT_PATH is set")
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("firebase service account file not found: %s", path)
		}
		opt = option.WithCredentialsFile(path)
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting auth client: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	ident := &Identity{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		ident.Email = email
	}
	if name, ok := decoded.Claims["name"].(string); ok {
		ident.Name = name
	}
	return ident, nil
}

func (v *FirebaseVerifier) GetProfiles(ctx context.Context, uids []string) (map[string]Profile, error) {
	if len(uids) == 0 {
		return map[string]Profile{}, nil
	}

	identifiers := make([]auth.UserIdentifier, 0, len(uids))
	for _, uid := range uids {
		identifiers = append(identifiers, auth.UIDIdentifier{UID: uid})
	}

	result, err := v.client.GetUsers(ctx, identifiers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user profiles: %w", err)
	}

	profiles := make(map[string]Profile, len(result.Users))
	for _, u := range result.Users {
		profiles[u.UID] = Profile{
			UID:         u.UID,
			DisplayName: u.DisplayName,
			Email:       u.Email,
			PhotoURL:    u.PhotoURL,
		}
	}
	return profiles, nil
}
