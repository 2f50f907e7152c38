package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionJWTRoundTrip(t *testing.T) {
	token, err := GenerateSessionJWT("sess-1", "secret", 1)
	assert.NoError(t, err)

	sessionID, err := ParseJWT(token, "secret")
	assert.NoError(t, err)
	assert.Equal(t, "sess-1", sessionID)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateSessionJWT("sess-1", "secret", 1)
	assert.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestAPIKeyHash(t *testing.T) {
	hash, err := HashAPIKey("my-key")
	assert.NoError(t, err)
	assert.True(t, CheckAPIKeyHash("my-key", hash))
	assert.False(t, CheckAPIKeyHash("other-key", hash))
}

func TestPKCEChallengeS256(t *testing.T) {
	// RFC 7636 appendix B reference pair.
	challenge := PKCEChallengeS256("dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk")
	assert.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", challenge)
}

func TestGeneratePKCEVerifier(t *testing.T) {
	first, err := GeneratePKCEVerifier()
	assert.NoError(t, err)
	second, err := GeneratePKCEVerifier()
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.GreaterOrEqual(t, len(first), 43, "verifier must satisfy the RFC 7636 minimum length")
}

func TestGenerateRequestID(t *testing.T) {
	requestID := GenerateRequestID()
	assert.True(t, strings.HasPrefix(requestID, "VTLTRND_SVC_"))
}
