// Package naming derives identifiers, file names and table names from user
// input. Every function is pure and locale independent.
package naming

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

// irregular nouns, singular to plural. Matched on the last word of a name
// before the inflect rules run.
var irregular = map[string]string{
	"person":   "people",
	"man":      "men",
	"woman":    "women",
	"child":    "children",
	"mouse":    "mice",
	"goose":    "geese",
	"foot":     "feet",
	"tooth":    "teeth",
	"ox":       "oxen",
	"leaf":     "leaves",
	"life":     "lives",
	"knife":    "knives",
	"wife":     "wives",
	"half":     "halves",
	"wolf":     "wolves",
	"shelf":    "shelves",
	"box":      "boxes",
	"company":  "companies",
	"category": "categories",
	"status":   "statuses",
	"address":  "addresses",
	"quiz":     "quizzes",
}

var singulars = func() map[string]string {
	m := make(map[string]string, len(irregular))
	for s, p := range irregular {
		m[p] = s
	}
	return m
}()

var uncountable = map[string]struct{}{
	"equipment":   {},
	"information": {},
	"metadata":    {},
	"news":        {},
	"series":      {},
	"sheep":       {},
	"fish":        {},
	"species":     {},
}

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	for _, w := range []string{
		"ACL", "API", "ASCII", "AWS", "CPU", "CSS", "DNS", "EOF", "GUID",
		"HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM",
		"RHS", "RPC", "SLA", "SMTP", "SQL", "SSH", "SSO", "TCP", "TLS",
		"TTL", "UDP", "UI", "UID", "URI", "URL", "UTF8", "UUID", "VM",
		"XML", "XMPP", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// Snake converts the given name into snake_case.
//
//	Username => username
//	FullName => full_name
//	HTTPCode => http_code
//	full-name => full_name
func Snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	rs := []rune(strings.Join(strings.FieldsFunc(s, isSeparator), "_"))
	for i, r := range rs {
		// Put '_' if it is not a start or end of a word, current letter is
		// uppercase, and previous is lowercase (cases like: "UserInfo"), or
		// next letter is also a lowercase and previous letter is not "_".
		if i > 0 && i < len(rs)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rs[i-1]) ||
				j != i-1 && unicode.IsLower(rs[i+1]) && unicode.IsLetter(rs[i-1]) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Pascal converts the given name into PascalCase, keeping Go initialisms
// upper-cased.
//
//	user_info  => UserInfo
//	user_id    => UserID
//	full-admin => FullAdmin
//	UserInfo   => UserInfo
func Pascal(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	for i, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			words[i] = upper
		} else {
			words[i] = rules.Capitalize(w)
		}
	}
	return strings.Join(words, "")
}

// Camel converts the given name into camelCase.
//
//	user_info => userInfo
//	user_id   => userID
//	id        => id
func Camel(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 0 {
		return ""
	}
	first := words[0]
	if _, ok := acronyms[strings.ToUpper(first)]; ok {
		first = strings.ToLower(first)
	} else if first != "" {
		first = strings.ToLower(first[:1]) + first[1:]
	}
	return first + Pascal(strings.Join(words[1:], "_"))
}

// Plural returns the plural form of the last word in name.
//
//	user      => users
//	person    => people
//	blog_post => blog_posts
func Plural(name string) string {
	return inflectLast(name, func(w string) string {
		if p, ok := irregular[w]; ok {
			return p
		}
		if _, ok := singulars[w]; ok {
			return w
		}
		return rules.Pluralize(w)
	})
}

// Singular returns the singular form of the last word in name.
//
//	users  => user
//	people => person
//	leaves => leaf
func Singular(name string) string {
	return inflectLast(name, func(w string) string {
		if s, ok := singulars[w]; ok {
			return s
		}
		if _, ok := irregular[w]; ok {
			return w
		}
		return rules.Singularize(w)
	})
}

// inflectLast applies fn to the lower-cased last word of name and restores
// the original capitalization of that word.
func inflectLast(name string, fn func(string) string) string {
	if name == "" {
		return name
	}
	prefix, word := "", name
	if i := strings.LastIndexByte(name, '_'); i >= 0 {
		prefix, word = name[:i+1], name[i+1:]
	}
	lower := strings.ToLower(word)
	if _, ok := uncountable[lower]; ok || word == "" {
		return name
	}
	out := fn(lower)
	switch {
	case word == strings.ToUpper(word) && len(word) > 1:
		out = strings.ToUpper(out)
	case unicode.IsUpper(rune(word[0])):
		out = strings.ToUpper(out[:1]) + out[1:]
	}
	return prefix + out
}

// Receiver returns a short receiver name for a type name.
//
//	User     => u
//	BlogPost => bp
func Receiver(s string) string {
	var b strings.Builder
	for _, w := range strings.Split(Snake(s), "_") {
		if w != "" {
			b.WriteByte(w[0])
		}
	}
	if b.Len() == 0 {
		return "r"
	}
	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}
