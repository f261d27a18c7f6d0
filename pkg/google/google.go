// Package google verifies Google Identity Services ID tokens.
package google

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

var (
	ErrNotConfigured = errors.New("google login is not configured")
	ErrInvalidToken  = errors.New("invalid google credential")
)

// Profile is the subset of the ID token payload used to find or create an account.
type Profile struct {
	Email   string
	Name    string
	Picture string
}

type Verifier interface {
	Verify(ctx context.Context, credential string) (*Profile, error)
}

type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type idTokenVerifier struct {
	clientID string
	validate validateFunc
}

// NewVerifier checks signature, audience and expiry against clientID.
func NewVerifier(clientID string) Verifier {
	return &idTokenVerifier{clientID: clientID, validate: idtoken.Validate}
}

func (v *idTokenVerifier) Verify(ctx context.Context, credential string) (*Profile, error) {
	if v.clientID == "" {
		return nil, ErrNotConfigured
	}
	if credential == "" {
		return nil, ErrInvalidToken
	}

	payload, err := v.validate(ctx, credential, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return profileFromClaims(payload.Claims)
}

func profileFromClaims(claims map[string]interface{}) (*Profile, error) {
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrInvalidToken)
	}
	if verified, ok := claims["email_verified"].(bool); !ok || !verified {
		return nil, fmt.Errorf("%w: email not verified", ErrInvalidToken)
	}

	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)

	return &Profile{Email: email, Name: name, Picture: picture}, nil
}
