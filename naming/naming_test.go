package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnake(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"Username", "username"},
		{"FullName", "full_name"},
		{"HTTPCode", "http_code"},
		{"UserID", "user_id"},
		{"UserIDs", "user_ids"},
		{"PHBOrg", "phb_org"},
		{"getHTTPResponse", "get_http_response"},
		{"user_id", "user_id"},
		{"full-name", "full_name"},
		{"blog post", "blog_post"},
		{"CreateUsersTable", "create_users_table"},
		{"ÜberName", "über_name"},
		{"CaféÉclair", "café_éclair"},
		{"naïve", "naïve"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.out, Snake(tt.in))
		})
	}
}

func TestPascal(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"user_info", "UserInfo"},
		{"full_name", "FullName"},
		{"user_id", "UserID"},
		{"full-admin", "FullAdmin"},
		{"http_code", "HTTPCode"},
		{"UserInfo", "UserInfo"},
		{"user", "User"},
		{"create_users_table", "CreateUsersTable"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.out, Pascal(tt.in))
		})
	}
}

func TestCamel(t *testing.T) {
	assert.Equal(t, "userInfo", Camel("user_info"))
	assert.Equal(t, "userID", Camel("user_id"))
	assert.Equal(t, "id", Camel("id"))
	assert.Equal(t, "blogPost", Camel("BlogPost"))
	assert.Equal(t, "", Camel(""))
}

func TestSnakePascalRoundTrip(t *testing.T) {
	for _, s := range []string{
		"user",
		"user_profile",
		"user_id",
		"http_code",
		"create_users_table",
		"BlogPost",
		"order-line",
		"xml_parser",
	} {
		t.Run(s, func(t *testing.T) {
			assert.Equal(t, Snake(s), Snake(Pascal(s)))
		})
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"user", "users"},
		{"post", "posts"},
		{"company", "companies"},
		{"person", "people"},
		{"box", "boxes"},
		{"leaf", "leaves"},
		{"child", "children"},
		{"blog_post", "blog_posts"},
		{"sales_person", "sales_people"},
		{"Person", "People"},
		{"sheep", "sheep"},
		{"people", "people"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.out, Plural(tt.in))
		})
	}
}

func TestSingular(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"users", "user"},
		{"posts", "post"},
		{"companies", "company"},
		{"people", "person"},
		{"boxes", "box"},
		{"leaves", "leaf"},
		{"blog_posts", "blog_post"},
		{"person", "person"},
		{"sheep", "sheep"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.out, Singular(tt.in))
		})
	}
}

func TestPluralOfSingular(t *testing.T) {
	for _, w := range []string{"person", "leaf", "box", "company", "user", "post"} {
		t.Run(w, func(t *testing.T) {
			assert.Equal(t, Plural(w), Plural(Singular(w)))
		})
	}
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "users", Plural(Snake("User")))
	assert.Equal(t, "blog_posts", Plural(Snake("BlogPost")))
	assert.Equal(t, "people", Plural(Snake("Person")))
}

func TestReceiver(t *testing.T) {
	assert.Equal(t, "u", Receiver("User"))
	assert.Equal(t, "bp", Receiver("BlogPost"))
	assert.Equal(t, "r", Receiver(""))
}
