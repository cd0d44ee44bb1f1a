package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tideorm/tide/schema/edge"
	"github.com/tideorm/tide/schema/field"
)

func TestParse(t *testing.T) {
	d, warnings := Parse(Input{
		Name:          "blog_post",
		Fields:        "title:string,body:text:nullable,slug:string,bad",
		Relations:     "author:belongs_to:User,tags:many:Tag",
		Translatable:  "title, body",
		Files:         "cover",
		UniqueIndexes: "slug",
		Nullable:      "slug",
		Timestamps:    true,
	})
	require.Len(t, warnings, 2)
	assert.ErrorIs(t, warnings[0], field.ErrMalformed)
	assert.ErrorIs(t, warnings[1], edge.ErrUnknownKind)

	assert.Equal(t, "BlogPost", d.Name)
	assert.Equal(t, "blog_posts", d.TableName())
	require.Len(t, d.Fields, 3)
	require.Len(t, d.Edges, 1)
	assert.Equal(t, []string{"title", "body"}, d.Translatable)
	assert.True(t, d.HasFiles())
	assert.True(t, d.Timestamps)
	assert.False(t, d.SoftDeletes)

	slug := d.Field("slug")
	require.NotNil(t, slug)
	assert.True(t, d.IsUnique(slug))
	assert.True(t, d.IsNullable(slug))
	assert.False(t, d.IsIndexed(slug))
	assert.Nil(t, d.Field("missing"))
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "people", (&Descriptor{Name: "Person"}).TableName())
	assert.Equal(t, "members", (&Descriptor{Name: "Person", Table: "members"}).TableName())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b,"))
	assert.Nil(t, SplitList(""))
}

func TestParse_UnknownNames(t *testing.T) {
	d, warnings := Parse(Input{
		Name:          "User",
		Fields:        "email:string,bio:text",
		Relations:     "team:belongs_to:Team",
		Indexes:       "email,nosuchcol,team_id,created_at",
		UniqueIndexes: "nick",
		Nullable:      "bio,phone",
		Translatable:  "title",
		Files:         "avatar",
		Timestamps:    true,
	})
	require.Len(t, warnings, 4)
	for _, w := range warnings {
		assert.ErrorIs(t, w, ErrUnknownName)
	}
	var ne *NameError
	require.ErrorAs(t, warnings[0], &ne)
	assert.Equal(t, "indexes", ne.Set)
	assert.Equal(t, "nosuchcol", ne.Name)
	assert.Equal(t, `tide: unknown field "nosuchcol" in indexes`, ne.Error())

	assert.Equal(t, []string{"email", "team_id", "created_at"}, d.Indexes)
	assert.Empty(t, d.UniqueIndexes)
	assert.Equal(t, []string{"bio"}, d.NullableNames)
	assert.Empty(t, d.Translatable)
	assert.Equal(t, []string{"avatar"}, d.Files, "attachment names are not columns")
}
