// Package fake returns placeholder values for factories and seeders.
//
// Values are random but plausible. Email addresses are unique per call.
package fake

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

var names = []string{
	"Alice", "Bob", "Charlie", "Diana", "Eve", "Frank",
	"Grace", "Henry", "Ivy", "Jack", "Kate", "Leo",
}

var lorem = strings.Fields("Lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor incididunt ut labore et dolore magna aliqua")

// Name returns a random first name.
func Name() string {
	return names[rand.IntN(len(names))]
}

// Email returns a unique example.com address whose local part starts with
// label, for example "user.1f0c9e2a@example.com".
func Email(label string) string {
	if label == "" {
		label = "user"
	}
	return label + "." + uuid.NewString()[:8] + "@example.com"
}

// Number returns a random number in [lo, hi]. The bounds may be given in
// either order.
func Number(lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + rand.IntN(hi-lo+1)
}

// Bool returns a random boolean.
func Bool() bool {
	return rand.IntN(2) == 1
}

// Lorem returns the first words of lorem ipsum, at most all of them.
func Lorem(words int) string {
	if words <= 0 {
		return ""
	}
	return strings.Join(lorem[:min(words, len(lorem))], " ")
}

// UUID returns a random UUID.
func UUID() uuid.UUID {
	return uuid.New()
}
