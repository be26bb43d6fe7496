package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOpts = Options{Issuer: "sangha-test", SigningKey: "test-key", AccessTTL: time.Minute, RefreshTTL: time.Hour}

func TestSignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore(), nil, nil, testOpts)

	sess, err := svc.SignUp(ctx, "  Radha@Example.com ", "hare-krishna")
	require.NoError(t, err)
	assert.Equal(t, "radha@example.com", sess.User.Email)
	assert.NotEmpty(t, sess.AccessToken)

	claims, err := Parse(sess.AccessToken, testOpts.SigningKey, testOpts.Issuer)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, claims.UserID())
	assert.Equal(t, KindAccess, claims.Kind)

	_, err = svc.SignUp(ctx, "radha@example.com", "another-pass")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.SignIn(ctx, "RADHA@example.com", "hare-krishna")
	assert.NoError(t, err)

	_, err = svc.SignIn(ctx, "radha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "nobody@example.com", "hare-krishna")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUpValidation(t *testing.T) {
	svc := NewService(newMemStore(), nil, nil, testOpts)
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "bad email", email: "not-an-email", password: "secret1", wantErr: ErrInvalidEmail},
		{name: "display name", email: "Bob <bob@example.org>", password: "secret1", wantErr: ErrInvalidEmail},
		{name: "empty email", email: "  ", password: "secret1", wantErr: ErrInvalidEmail},
		{name: "short password", email: "a@b.co", password: "123", wantErr: ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore(), nil, nil, testOpts)
	sess, err := svc.SignUp(ctx, "gopal@example.com", "govinda")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, sess.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, sess.RefreshToken, next.RefreshToken)

	_, err = svc.Refresh(ctx, sess.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "a refresh token is single use")

	_, err = svc.Refresh(ctx, next.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "access tokens cannot refresh")
}

func TestSignOutRevokesTokens(t *testing.T) {
	ctx := context.Background()
	bl := newMemBlacklist()
	svc := NewService(newMemStore(), bl, nil, testOpts)
	sess, err := svc.SignUp(ctx, "madhava@example.com", "govinda")
	require.NoError(t, err)
	claims, err := Parse(sess.AccessToken, testOpts.SigningKey, testOpts.Issuer)
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, claims, sess.RefreshToken))

	revoked, _ := bl.Revoked(ctx, claims.ID)
	assert.True(t, revoked)
	_, err = svc.Refresh(ctx, sess.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignInWithGoogle(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()

	disabled := NewService(st, nil, nil, testOpts)
	_, err := disabled.SignInWithGoogle(ctx, "token")
	assert.ErrorIs(t, err, ErrGoogleDisabled)

	// existing password identity gets linked
	svc := NewService(st, nil, stubVerifier{ident: GoogleIdentity{Subject: "g-1", Email: "Keshava@example.com", EmailVerified: true}}, testOpts)
	pw, err := svc.SignUp(ctx, "keshava@example.com", "govinda")
	require.NoError(t, err)

	sess, err := svc.SignInWithGoogle(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, pw.User.ID, sess.User.ID)

	again, err := svc.SignInWithGoogle(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, pw.User.ID, again.User.ID)

	// brand new identity
	fresh := NewService(st, nil, stubVerifier{ident: GoogleIdentity{Subject: "g-2", Email: "new@example.com", EmailVerified: true}}, testOpts)
	sess, err = fresh.SignInWithGoogle(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", sess.User.Email)

	// an unverified google email neither links nor creates
	other, err := svc.SignUp(ctx, "damodara@example.com", "govinda")
	require.NoError(t, err)
	unverified := NewService(st, nil, stubVerifier{ident: GoogleIdentity{Subject: "g-3", Email: "damodara@example.com"}}, testOpts)
	_, err = unverified.SignInWithGoogle(ctx, "token")
	assert.ErrorIs(t, err, ErrUnverifiedEmail)
	linked, err := st.GetUserByGoogleSub(ctx, "g-3")
	require.NoError(t, err)
	assert.Nil(t, linked)
	pwAgain, err := svc.SignIn(ctx, "damodara@example.com", "govinda")
	require.NoError(t, err)
	assert.Equal(t, other.User.ID, pwAgain.User.ID)

	stranger := NewService(st, nil, stubVerifier{ident: GoogleIdentity{Subject: "g-4", Email: "stranger@example.com"}}, testOpts)
	_, err = stranger.SignInWithGoogle(ctx, "token")
	assert.ErrorIs(t, err, ErrUnverifiedEmail)
	created, err := st.GetUserByEmail(ctx, "stranger@example.com")
	require.NoError(t, err)
	assert.Nil(t, created)

	bad := NewService(st, nil, stubVerifier{err: ErrInvalidToken}, testOpts)
	_, err = bad.SignInWithGoogle(ctx, "token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGoogleVerifierRequiresClientID(t *testing.T) {
	_, err := GoogleVerifier{}.Verify("anything")
	assert.ErrorIs(t, err, ErrGoogleDisabled)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("nitai-gaura")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "nitai-gaura"))
	assert.False(t, CheckPassword(hash, "nitai"))
	assert.False(t, CheckPassword("", "nitai-gaura"))
}
