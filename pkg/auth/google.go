package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleIdentity is the subset of a verified Google ID token the platform
// cares about.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

// GoogleVerifier validates Google ID tokens. It is an interface so
// handlers can be tested without calling Google.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

type googleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (g *googleVerifier) Verify(ctx context.Context, token string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, token, g.clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate google token: %w", err)
	}

	identity := &GoogleIdentity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("google token is missing an email claim")
	}
	return identity, nil
}
