package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/recruitment-api/pkg/jwt"
)

var testCfg = pkgjwt.Config{
	Secret:     "test-secret",
	Algorithm:  "HS256",
	Issuer:     "recruitment-test",
	ExpMinutes: 30,
}

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testCfg, "admin@company.com", "ADMIN", time.Now())
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testCfg, tok)
	require.NoError(t, err)
	assert.Equal(t, "admin@company.com", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "recruitment-test", claims.Issuer)
}

func TestParse_Expired(t *testing.T) {
	tok, err := pkgjwt.Generate(testCfg, "a@b.com", "RECRUITER", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testCfg, tok)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(testCfg, "a@b.com", "ADMIN", time.Now())
	require.NoError(t, err)

	other := testCfg
	other.Secret = "another-secret"
	_, err = pkgjwt.Parse(other, tok)
	assert.Error(t, err)
}

func TestParse_AlgorithmMismatch(t *testing.T) {
	hs512 := testCfg
	hs512.Algorithm = "HS512"
	tok, err := pkgjwt.Generate(hs512, "a@b.com", "ADMIN", time.Now())
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testCfg, tok)
	assert.Error(t, err, "un token HS512 no debe aceptarse cuando se espera HS256")
}

func TestParse_Garbage(t *testing.T) {
	_, err := pkgjwt.Parse(testCfg, "not-a-token")
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := pkgjwt.Generate(pkgjwt.Config{}, "a@b.com", "", time.Now())
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}
