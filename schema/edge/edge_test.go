package edge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		token  string
		name   string
		kind   Kind
		entity string
		fk     string
	}{
		{"posts:has_many:Post", "posts", HasMany, "Post", ""},
		{"posts:hasmany:Post", "posts", HasMany, "Post", ""},
		{"author:belongs_to:User", "author", BelongsTo, "User", ""},
		{"author:BelongsTo:user", "author", BelongsTo, "User", ""},
		{"profile:has_one:Profile", "profile", HasOne, "Profile", ""},
		{"profile:HASONE:profile", "profile", HasOne, "Profile", ""},
		{"owner:belongs_to:User:owner_id", "owner", BelongsTo, "User", "owner_id"},
		{" tags : has_many : blog_tag ", "tags", HasMany, "BlogTag", ""},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			d, err := Parse(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name)
			assert.Equal(t, tt.kind, d.Kind)
			assert.Equal(t, tt.entity, d.Entity)
			assert.Equal(t, tt.fk, d.ForeignKey)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		token string
		err   error
	}{
		{"posts", ErrMalformed},
		{"posts:has_many", ErrMalformed},
		{":has_many:Post", ErrMalformed},
		{"posts:has_many:", ErrMalformed},
		{"posts:many_to_many:Post", ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			d, err := Parse(tt.token)
			assert.Nil(t, d)
			assert.ErrorIs(t, err, tt.err)
		})
	}
	_, err := Parse("posts:many_to_many:Post")
	assert.EqualError(t, err, `tide: unknown relation type many_to_many in "posts:many_to_many:Post"`)
}

func TestForeignKeyFor(t *testing.T) {
	hasMany, err := Parse("posts:has_many:Post")
	require.NoError(t, err)
	assert.Equal(t, "user_id", hasMany.ForeignKeyFor("User"))

	hasOne, err := Parse("profile:has_one:Profile")
	require.NoError(t, err)
	assert.Equal(t, "blog_post_id", hasOne.ForeignKeyFor("BlogPost"))

	belongsTo, err := Parse("author:belongs_to:User")
	require.NoError(t, err)
	assert.Equal(t, "user_id", belongsTo.ForeignKeyFor("Post"))

	explicit, err := Parse("posts:has_many:Post:writer_id")
	require.NoError(t, err)
	assert.Equal(t, "writer_id", explicit.ForeignKeyFor("User"))
}

func TestKind(t *testing.T) {
	assert.Equal(t, "belongs_to", BelongsTo.String())
	assert.Equal(t, "has_one", HasOne.String())
	assert.Equal(t, "has_many", HasMany.String())
	assert.Equal(t, "invalid", Kind(0).String())
	assert.True(t, BelongsTo.Unique())
	assert.False(t, HasMany.Unique())
	assert.True(t, HasMany.Inverse())
	assert.False(t, BelongsTo.Inverse())
}

func TestParseList(t *testing.T) {
	edges, warnings := ParseList("posts:has_many:Post,bad:owns:Thing,author:belongs_to:User,")
	require.Len(t, edges, 2)
	assert.Equal(t, "posts", edges[0].Name)
	assert.Equal(t, "author", edges[1].Name)
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], ErrUnknownKind)
}
