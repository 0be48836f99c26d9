package jwt_test

import (
	"testing"

	"github.com/jhoicas/restobar-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "cajero", "restobar-api", 5)
	require.NoError(t, err)

	userID, role, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "cajero", role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "admin", "restobar-api", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "admin", "restobar-api", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "admin", "restobar-api", 5)
	assert.Error(t, err)
}
