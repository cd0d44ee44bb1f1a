package tide

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	token := EncodeToken[user](int64(5))
	assert.NotContains(t, token, "users")
	assert.NotContains(t, token, "=")

	id, err := DecodeToken[user](token)
	require.NoError(t, err)
	assert.Equal(t, "5", id)
}

func TestToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "***"},
		{"other model", EncodeToken[post](5)},
		{"empty key", EncodeToken[user]("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeToken[user](tt.token)
			require.ErrorIs(t, err, ErrInvalidToken)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestFindByToken(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	u := seedUsers(t, db, "ann")[0]

	got, err := FindByToken[user](ctx, db, EncodeToken[user](u.ID))
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = FindByToken[user](ctx, db, EncodeToken[user]("abc"))
	assert.True(t, IsValidationError(err))

	_, err = FindByToken[user](ctx, db, EncodeToken[user](99))
	assert.True(t, IsNotFound(err))

	k := apiKey{Label: "ci"}
	require.NoError(t, Insert(ctx, db, &k))
	gotKey, err := FindByToken[apiKey](ctx, db, EncodeToken[apiKey](k.ID))
	require.NoError(t, err)
	assert.Equal(t, k.ID, gotKey.ID)
}

func TestParseKey(t *testing.T) {
	v, err := parseKey(uuidType, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), v)

	_, err = parseKey(timeType, "2024")
	require.Error(t, err)
}
