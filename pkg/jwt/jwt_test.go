package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/mbodji/boutique-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "boutique-api-test"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "admin", testIssuer, 168)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "admin", role)
}

func TestParse_MauvaisSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "client", testIssuer, 1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("autre-secret", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpire(t *testing.T) {
	// Expiration négative : le token est déjà expiré à l'émission.
	tok, err := pkgjwt.Generate(testSecret, testUserID, "client", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVide(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, "client", testIssuer, 168)
	assert.Error(t, err)
}
