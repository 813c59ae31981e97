package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_Horizons(t *testing.T) {
	codec := newTestCodec(t, "super-secret", testNow)
	issuer := NewIssuer(codec, 15*time.Minute, 7*24*time.Hour)

	access, err := issuer.IssueAccess(3, "Reader")
	require.NoError(t, err)
	refresh, err := issuer.IssueRefresh(3, "Reader")
	require.NoError(t, err)

	accessClaims, err := codec.Decode(access)
	require.NoError(t, err)
	refreshClaims, err := codec.Decode(refresh)
	require.NoError(t, err)

	assert.Equal(t, KindAccess, accessClaims.Kind)
	assert.Equal(t, 15*time.Minute, accessClaims.ExpiresAtTime().Sub(accessClaims.IssuedAtTime()))

	assert.Equal(t, KindRefresh, refreshClaims.Kind)
	assert.Equal(t, 7*24*time.Hour, refreshClaims.ExpiresAtTime().Sub(refreshClaims.IssuedAtTime()))

	assert.Equal(t, int64(3), refreshClaims.UserID)
	assert.Equal(t, "Reader", refreshClaims.Username)
}

func TestIssuer_DefaultsOnNonPositiveTTL(t *testing.T) {
	issuer := NewIssuer(newTestCodec(t, "s", testNow), 0, -time.Second)
	assert.Equal(t, DefaultAccessTTL, issuer.AccessTTL())

	claims := issuer.NewClaims(1, "a", KindRefresh)
	assert.Equal(t, DefaultRefreshTTL, claims.ExpiresAtTime().Sub(claims.IssuedAtTime()))
}

func TestIssuer_TokensAreUniqueWithinOneSecond(t *testing.T) {
	issuer := NewIssuer(newTestCodec(t, "s", testNow), 0, 0)

	first, err := issuer.IssueRefresh(1, "a")
	require.NoError(t, err)
	second, err := issuer.IssueRefresh(1, "a")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
