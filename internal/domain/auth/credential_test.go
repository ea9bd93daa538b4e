package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredentialDetectsFormat(t *testing.T) {
	hashed, err := HashPassword("super-secret")
	require.NoError(t, err)

	assert.Equal(t, CredentialBcrypt, ParseCredential(hashed).Kind)
	assert.Equal(t, CredentialSHA256, ParseCredential(SHA256Hex("admin123")).Kind)
	assert.Equal(t, CredentialPlaintext, ParseCredential("admin123").Kind)
	assert.Equal(t, CredentialPlaintext, ParseCredential(strings.ToUpper(SHA256Hex("admin123"))).Kind)
	assert.Equal(t, CredentialPlaintext, ParseCredential(SHA256Hex("x")[:63]).Kind)
	assert.Equal(t, CredentialPlaintext, ParseCredential("$2a$secret").Kind)
	assert.Equal(t, CredentialPlaintext, ParseCredential(hashed[:59]).Kind)
}

func TestParseCredentialKind(t *testing.T) {
	kind, err := ParseCredentialKind("")
	require.NoError(t, err)
	assert.Equal(t, CredentialSHA256, kind)

	kind, err = ParseCredentialKind(" BCRYPT ")
	require.NoError(t, err)
	assert.Equal(t, CredentialBcrypt, kind)

	_, err = ParseCredentialKind("plaintext")
	assert.Error(t, err)
}

func TestEncodePassword(t *testing.T) {
	digest, err := EncodePassword(CredentialSHA256, "admin123")
	require.NoError(t, err)
	assert.Equal(t, SHA256Hex("admin123"), digest)

	hashed, err := EncodePassword(CredentialBcrypt, "admin123")
	require.NoError(t, err)
	assert.True(t, ParseCredential(hashed).Verify("admin123"))

	_, err = EncodePassword(CredentialPlaintext, "admin123")
	assert.Error(t, err)
}

func TestCredentialVerify(t *testing.T) {
	hashed, err := HashPassword("super-secret")
	require.NoError(t, err)

	cases := []struct {
		name     string
		stored   string
		password string
		want     bool
	}{
		{"bcrypt match", hashed, "super-secret", true},
		{"bcrypt mismatch", hashed, "wrong", false},
		{"digest match", SHA256Hex("admin123"), "admin123", true},
		{"digest mismatch", SHA256Hex("admin123"), "admin124", false},
		{"digest is not a password", SHA256Hex("admin123"), SHA256Hex("admin123"), false},
		{"plaintext match", "admin123", "admin123", true},
		{"plaintext mismatch", "admin123", "admin", false},
		{"plaintext shaped like bcrypt prefix", "$2b$hunter2", "$2b$hunter2", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseCredential(tc.stored).Verify(tc.password))
		})
	}
}

func TestSHA256HexKnownValue(t *testing.T) {
	assert.Equal(t, "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9", SHA256Hex("admin123"))
}
