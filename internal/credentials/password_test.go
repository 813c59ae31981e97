package credentials

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast
var testParams = Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(testParams)

	encoded, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "argon2id$m=1024,t=1,p=1$"))

	ok, err := h.Verify("s3cret", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewHasher(testParams)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHasher_VerifyUsesEncodedParams(t *testing.T) {
	encoded, err := NewHasher(testParams).Hash("pw")
	require.NoError(t, err)

	other := NewHasher(Params{Memory: 2048, Iterations: 2, Parallelism: 1, SaltLength: 8, KeyLength: 16})
	ok, err := other.Verify("pw", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasher_InvalidHash(t *testing.T) {
	h := NewHasher(testParams)

	for _, encoded := range []string{
		"",
		"bcrypt$whatever",
		"argon2id$m=1024,t=1,p=1$onlysalt",
		"argon2id$garbage$c2FsdA$a2V5",
		"argon2id$m=0,t=1,p=1$c2FsdA$a2V5",
		"argon2id$m=1024,t=1,p=1$!!!$a2V5",
		"argon2id$m=1024,t=1,p=1$c2FsdA$",
	} {
		t.Run(encoded, func(t *testing.T) {
			ok, err := h.Verify("pw", encoded)
			assert.ErrorIs(t, err, ErrInvalidHash)
			assert.False(t, ok)
		})
	}
}

func TestNewHasher_Defaults(t *testing.T) {
	h := NewHasher(Params{})
	assert.Equal(t, DefaultParams, h.params)
}
