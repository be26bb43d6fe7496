package auth

import (
	"errors"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

// GoogleIdentity is the verified subset of a Google ID token.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// IDTokenVerifier verifies ID tokens minted by an OAuth provider.
type IDTokenVerifier interface {
	Verify(idToken string) (GoogleIdentity, error)
}

// GoogleVerifier checks Google ID tokens against the configured client id.
type GoogleVerifier struct {
	ClientID string
}

// Verify validates the signature and audience, then decodes the claims.
func (g GoogleVerifier) Verify(idToken string) (GoogleIdentity, error) {
	if g.ClientID == "" {
		return GoogleIdentity{}, ErrGoogleDisabled
	}
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{g.ClientID}); err != nil {
		return GoogleIdentity{}, ErrInvalidToken
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return GoogleIdentity{}, ErrInvalidToken
	}
	if claimSet.Email == "" || claimSet.Sub == "" {
		return GoogleIdentity{}, errors.New("google token without email")
	}
	return GoogleIdentity{Subject: claimSet.Sub, Email: claimSet.Email, EmailVerified: claimSet.EmailVerified, Name: claimSet.Name}, nil
}
