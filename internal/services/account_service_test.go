package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"veneya/internal/repos"
)

func accountFixture(t *testing.T) *AccountService {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewAccountService(repos.NewAccountRepo(db), zaptest.NewLogger(t))
}

func TestLoginRoundTrip(t *testing.T) {
	svc := accountFixture(t)
	id, err := svc.Register("maria", "maria@veneya.test", "secret123", "350.00")
	require.NoError(t, err)

	a, err := svc.Login("sid-1", "maria", "secret123")
	require.NoError(t, err)
	assert.Equal(t, id, a.ID)

	cur, err := svc.CurrentAccount("sid-1")
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "maria", cur.Username)

	require.NoError(t, svc.Logout("sid-1"))
	cur, err = svc.CurrentAccount("sid-1")
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestLoginRejectsMismatch(t *testing.T) {
	svc := accountFixture(t)
	_, err := svc.Register("maria", "maria@veneya.test", "secret123", "350.00")
	require.NoError(t, err)

	_, err = svc.Login("sid-1", "maria", "wrong")
	assert.ErrorIs(t, err, ErrBadCreds)
	_, err = svc.Login("sid-1", "nobody", "secret123")
	assert.ErrorIs(t, err, ErrBadCreds)
}

func TestRecoverSecret(t *testing.T) {
	svc := accountFixture(t)
	_, err := svc.Register("maria", "maria@veneya.test", "secret123", "350.00")
	require.NoError(t, err)

	// wrong answers: email, earnings, or unknown user
	_, err = svc.RecoverSecret("maria", "other@veneya.test", "350.00")
	assert.ErrorIs(t, err, ErrRecoveryMismatch)
	_, err = svc.RecoverSecret("maria", "maria@veneya.test", "999")
	assert.ErrorIs(t, err, ErrRecoveryMismatch)
	_, err = svc.RecoverSecret("nobody", "maria@veneya.test", "350.00")
	assert.ErrorIs(t, err, ErrRecoveryMismatch)

	// exact match resets and hands back the generated secret
	newSecret, err := svc.RecoverSecret("maria", "maria@veneya.test", "350.00")
	require.NoError(t, err)
	assert.Len(t, newSecret, 8)

	_, err = svc.Login("sid-1", "maria", "secret123")
	assert.ErrorIs(t, err, ErrBadCreds, "old secret must be dead")
	a, err := svc.Login("sid-1", "maria", newSecret)
	require.NoError(t, err)
	assert.Equal(t, "maria", a.Username)
}
