package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type CredentialKind int

const (
	CredentialPlaintext CredentialKind = iota
	CredentialSHA256
	CredentialBcrypt
)

func (k CredentialKind) String() string {
	switch k {
	case CredentialSHA256:
		return "sha256"
	case CredentialBcrypt:
		return "bcrypt"
	default:
		return "plaintext"
	}
}

// ParseCredentialKind maps a configured storage format name to its kind.
// Plaintext is never accepted as a storage format for new passwords.
func ParseCredentialKind(name string) (CredentialKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sha256":
		return CredentialSHA256, nil
	case "bcrypt":
		return CredentialBcrypt, nil
	default:
		return CredentialSHA256, fmt.Errorf("unsupported password hash %q", name)
	}
}

var (
	sha256Digest = regexp.MustCompile(`^[a-f0-9]{64}$`)
	bcryptHash   = regexp.MustCompile(`^\$2[aby]\$(0[4-9]|[12][0-9]|3[01])\$[./A-Za-z0-9]{53}$`)
)

// Credential is the stored admin password in one of the formats the document
// has carried over time.
type Credential struct {
	Kind  CredentialKind
	Value string
}

// ParseCredential detects the format of a stored password. Anything that is
// neither a well-formed bcrypt hash nor a lowercase SHA-256 hex digest is
// plaintext, so a legacy password that merely starts like a bcrypt hash still
// verifies.
func ParseCredential(stored string) Credential {
	switch {
	case bcryptHash.MatchString(stored):
		return Credential{Kind: CredentialBcrypt, Value: stored}
	case sha256Digest.MatchString(stored):
		return Credential{Kind: CredentialSHA256, Value: stored}
	default:
		return Credential{Kind: CredentialPlaintext, Value: stored}
	}
}

func (c Credential) Verify(password string) bool {
	switch c.Kind {
	case CredentialBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(c.Value), []byte(password)) == nil
	case CredentialSHA256:
		return subtle.ConstantTimeCompare([]byte(SHA256Hex(password)), []byte(c.Value)) == 1
	default:
		return subtle.ConstantTimeCompare([]byte(password), []byte(c.Value)) == 1
	}
}

func SHA256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// EncodePassword produces the stored form of password for kind.
func EncodePassword(kind CredentialKind, password string) (string, error) {
	switch kind {
	case CredentialSHA256:
		return SHA256Hex(password), nil
	case CredentialBcrypt:
		return HashPassword(password)
	default:
		return "", fmt.Errorf("refusing to store password as %s", kind)
	}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
