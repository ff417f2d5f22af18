// Package std holds the type, string and formatting helpers shared by the
// zenkai packages.
package std

import (
	"math"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IsNull reports whether v is nil or a nil pointer, map, slice, channel,
// func or interface.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// IsEmpty reports whether v has length zero. Values without a length are
// never empty.
func IsEmpty(v any) bool {
	if s, ok := v.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Map, reflect.Slice, reflect.Array, reflect.Chan:
		return rv.Len() == 0
	}
	return false
}

// IsNullOrEmpty is IsNull or IsEmpty.
func IsNullOrEmpty(v any) bool {
	return IsNull(v) || IsEmpty(v)
}

// IsNullOrWhitespace reports whether v is null or a string of whitespace.
func IsNullOrWhitespace(v any) bool {
	if IsNull(v) {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// Valuable reports whether v holds something other than null or empty.
func Valuable(v any) bool {
	return !IsNullOrEmpty(v)
}

// ToBoolean interprets common truthy spellings. Numbers of any width are
// true when non-zero. Anything else is false.
func ToBoolean(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "on", "y":
			return true
		}
	case int:
		return t != 0
	case int8:
		return t != 0
	case int16:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint8:
		return t != 0
	case uint16:
		return t != 0
	case uint32:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	case float64:
		return t != 0 && !math.IsNaN(t)
	}
	return false
}

// Capitalize upper-cases the first letter of every word and lower-cases
// the rest.
func Capitalize(s string) string {
	var sb strings.Builder
	start := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			start = true
			sb.WriteRune(r)
			continue
		}
		if start {
			sb.WriteRune(unicode.ToUpper(r))
		} else {
			sb.WriteRune(unicode.ToLower(r))
		}
		start = false
	}
	return sb.String()
}

// CapitalizeFirst upper-cases the first letter and lower-cases the rest.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// words splits an identifier or phrase into lower-case words, breaking on
// separators and on lower-to-upper case changes.
func words(s string) []string {
	var (
		out []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	rs := []rune(s)
	for i, r := range rs {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(rs[i-1]) ||
			(i+1 < len(rs) && unicode.IsUpper(rs[i-1]) && unicode.IsLower(rs[i+1]))):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return out
}

// CamelCase converts "Hello world", "hello-world" or "hello_world" to
// "helloWorld".
func CamelCase(s string) string {
	ws := words(s)
	for i := 1; i < len(ws); i++ {
		ws[i] = CapitalizeFirst(ws[i])
	}
	return strings.Join(ws, "")
}

// PascalCase converts to "HelloWorld".
func PascalCase(s string) string {
	ws := words(s)
	for i := range ws {
		ws[i] = CapitalizeFirst(ws[i])
	}
	return strings.Join(ws, "")
}

// KebabCase converts to "hello-world".
func KebabCase(s string) string {
	return strings.Join(words(s), "-")
}

// SnakeCase converts to "hello_world".
func SnakeCase(s string) string {
	return strings.Join(words(s), "_")
}

// RemoveAccents strips combining marks: "Crème brûlée" becomes
// "Creme brulee".
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
