// Package naming converts Go struct field names into record
// property names and database column names.
package naming

import (
	"strings"
	"unicode"
)

// Separator is inserted in front of every converted uppercase letter.
const Separator = '_'

// Instances of the naming conventions.
var (
	Underscore UnderscoreConvention
	Lower      LowerConvention
)

// UnderscoreConvention converts mixed case names into underscore separated
// lower case names. So the property name "userName" would be converted to
// "user_name".
//
// Every uppercase letter is treated as the start of a word, so there is no
// special handling for runs of capitals: "URLPath" becomes "u_r_l_path".
type UnderscoreConvention struct{}

// Convert converts name into its underscore form. A blank name is
// returned unchanged.
func (UnderscoreConvention) Convert(name string) string {
	if strings.TrimSpace(name) == "" {
		return name
	}
	var buf strings.Builder
	buf.Grow(len(name) + 4)
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i != 0 {
				buf.WriteRune(Separator)
			}
			buf.WriteRune(unicode.ToLower(r))
			continue
		}
		buf.WriteRune(r)
	}
	return buf.String()
}

// LowerConvention converts names to lower case without separators.
type LowerConvention struct{}

// Convert converts the name to lower case.
func (LowerConvention) Convert(name string) string {
	return strings.ToLower(name)
}

// Property returns the record property name for an exported Go field
// name. The name is split into words, treating a run of capitals as one
// word. The first word is lowercased and each word after it keeps only
// its first letter in upper case:
//
//	Name        -> name
//	CreatedTime -> createdTime
//	ID          -> id
//	UserID      -> userId
//	URLPath     -> urlPath
//	IDNumber    -> idNumber
func Property(fieldName string) string {
	src := []rune(fieldName)
	n := len(src)
	out := make([]rune, n)
	wordStart := 0
	for i, r := range src {
		if i > 0 && unicode.IsUpper(r) {
			prev := src[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && i+1 < n && unicode.IsLower(src[i+1])) {
				wordStart = i
			}
		}
		if wordStart == 0 || i > wordStart {
			r = unicode.ToLower(r)
		}
		out[i] = r
	}
	return string(out)
}
