package digest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gobeam/stringy"
)

// Path is a sequence of keys describing a location reached while walking a
// façade tree: strings for record keys, ints for sequence indices.
type Path []any

// Append returns a new Path with key appended, leaving the receiver intact.
func (p Path) Append(key any) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = key
	return next
}

// String renders the path the way a debug trace or error message wants it:
// "foo.bar[2].baz" for mixed record/sequence access.
func (p Path) String() string {
	var b strings.Builder
	for i, key := range p {
		switch k := key.(type) {
		case int:
			fmt.Fprintf(&b, "[%d]", k)
		case string:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(k)
		default:
			if i > 0 {
				b.WriteByte('.')
			}
			fmt.Fprintf(&b, "%v", k)
		}
	}
	return b.String()
}

// Humanized renders the path as a single StudlyCase token suitable for a
// generated accessor name or log field, e.g. "foo.bar[2]" -> "FooBarAt2".
func (p Path) Humanized() string {
	var parts []string
	for _, key := range p {
		switch k := key.(type) {
		case int:
			parts = append(parts, "At"+strconv.Itoa(k))
		case string:
			parts = append(parts, k)
		default:
			parts = append(parts, fmt.Sprintf("%v", k))
		}
	}
	joined := strings.Join(parts, "_")
	camel := stringy.New(joined).CamelCase().Get()
	if camel == "" {
		return camel
	}
	return strings.ToUpper(camel[:1]) + camel[1:]
}
