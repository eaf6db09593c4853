package credentials

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_VerifyRoundTrip(t *testing.T) {
	passwords := []string{"admin123", "p@ssw0rd!", "", "пароль", "a"}

	for _, p := range passwords {
		cred := Hash(p)
		assert.True(t, Verify(p, cred), "password %q must verify against its own hash", p)
	}
}

func TestHash_RandomSalt(t *testing.T) {
	a := Hash("admin123")
	b := Hash("admin123")

	require.NotEqual(t, a, b, "two hashes of the same password must differ")
	assert.True(t, Verify("admin123", a))
	assert.True(t, Verify("admin123", b))
}

func TestHash_Format(t *testing.T) {
	cred := Hash("secret")
	parts := strings.Split(cred, ":")

	require.Len(t, parts, 3)
	assert.Equal(t, "100000", parts[1])
	assert.Len(t, parts[0], saltSize*2, "salt is hex encoded")
	assert.Len(t, parts[2], keySize*2, "key is hex encoded")
}

func TestVerify_WrongPassword(t *testing.T) {
	cred := Hash("secret")
	assert.False(t, Verify("Secret", cred))
	assert.False(t, Verify("", cred))
}

func TestVerify_MalformedCredential(t *testing.T) {
	tests := []struct {
		name       string
		credential string
	}{
		{name: "empty", credential: ""},
		{name: "no colons", credential: "deadbeef"},
		{name: "one colon", credential: "deadbeef:100000"},
		{name: "too many fields", credential: "aa:1:bb:cc"},
		{name: "non-numeric iterations", credential: "deadbeef:lots:deadbeef"},
		{name: "zero iterations", credential: "deadbeef:0:deadbeef"},
		{name: "negative iterations", credential: "deadbeef:-5:deadbeef"},
		{name: "bad salt hex", credential: "zz:100000:deadbeef"},
		{name: "bad hash hex", credential: "deadbeef:100000:zz"},
		{name: "empty hash", credential: "deadbeef:100000:"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, Verify("secret", tc.credential))
		})
	}
}
