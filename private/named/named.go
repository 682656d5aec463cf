// Package named compiles SQL statements containing named placeholders of
// the form #{name} into the positional placeholders used by database drivers.
//
// A placeholder may be followed by a cast, as in #{tags}::JSONB. The cast is
// kept for dialects that understand it and dropped for the others.
//
// When the argument bound to a placeholder is a slice, the placeholder is
// expanded into one positional placeholder per element. This is most
// commonly useful for statements like
//
//	SELECT * FROM users WHERE id IN (#{ids})
//
// which, given three ids, becomes
//
//	SELECT * FROM users WHERE id IN (?,?,?)
package named

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/yusiwen/mapper/private/dialect"
	"github.com/yusiwen/mapper/private/scanner"
)

// ErrNotFound is returned by a Lookup when it has no value for a name.
var ErrNotFound = errors.New("no value")

// Lookup returns the argument bound to the named placeholder.
type Lookup func(name string) (interface{}, error)

// Map returns a Lookup for the values in m.
func Map(m map[string]interface{}) Lookup {
	return func(name string) (interface{}, error) {
		if v, ok := m[name]; ok {
			return v, nil
		}
		return nil, ErrNotFound
	}
}

// Statement is a query whose named placeholders have been located.
type Statement struct {
	query     string
	fragments []string // SQL text around the placeholders, len(names)+1
	names     []string
	casts     []string
}

// Compile locates the named placeholders in query. Text inside quoted
// literals, delimited identifiers and comments is never a placeholder.
// Other text that the scanner does not recognise is passed through
// unchanged for the database to report.
func Compile(query string) (*Statement, error) {
	type token struct {
		tok  scanner.Token
		text string
	}
	var tokens []token
	scan := scanner.New(query)
	for {
		tok, text := scan.Scan()
		if tok == scanner.EOF {
			break
		}
		if tok == scanner.ILLEGAL && strings.HasPrefix(text, "#{") {
			return nil, fmt.Errorf("malformed placeholder at %q", text)
		}
		tokens = append(tokens, token{tok: tok, text: text})
	}

	stmt := &Statement{query: query}
	var fragment strings.Builder
	for i := 0; i < len(tokens); i++ {
		if tokens[i].tok != scanner.NAMED {
			fragment.WriteString(tokens[i].text)
			continue
		}
		stmt.fragments = append(stmt.fragments, fragment.String())
		fragment.Reset()
		stmt.names = append(stmt.names, scanner.Name(tokens[i].text))

		// a cast immediately follows the placeholder
		var cast string
		if i+2 < len(tokens) && tokens[i+1].text == "::" && tokens[i+2].tok == scanner.IDENT {
			cast = tokens[i+1].text + tokens[i+2].text
			i += 2
		}
		stmt.casts = append(stmt.casts, cast)
	}
	stmt.fragments = append(stmt.fragments, fragment.String())
	return stmt, nil
}

// String returns the original query text.
func (stmt *Statement) String() string {
	return stmt.query
}

// Names returns the placeholder names in the order that they appear.
func (stmt *Statement) Names() []string {
	names := make([]string, len(stmt.names))
	copy(names, stmt.names)
	return names
}

// Bind builds the positional query for the dialect, looking up the argument
// for each placeholder by name. An error from lookup is returned wrapped.
// Slice arguments, other than []byte, are expanded into one placeholder
// per element.
func (stmt *Statement) Bind(d dialect.Dialect, lookup Lookup) (string, []interface{}, error) {
	var buf strings.Builder
	var args []interface{}
	for i, name := range stmt.names {
		buf.WriteString(stmt.fragments[i])
		arg, err := lookup(name)
		if err != nil {
			return "", nil, fmt.Errorf("placeholder #{%s}: %w", name, err)
		}
		cast := stmt.casts[i]
		if !d.SupportsCast() {
			cast = ""
		}
		if elems, ok := sliceElems(arg); ok {
			if len(elems) == 0 {
				return "", nil, fmt.Errorf("empty slice for placeholder #{%s}", name)
			}
			for j, elem := range elems {
				if j > 0 {
					buf.WriteRune(',')
				}
				args = append(args, elem)
				buf.WriteString(d.Placeholder(len(args)))
				buf.WriteString(cast)
			}
			continue
		}
		args = append(args, arg)
		buf.WriteString(d.Placeholder(len(args)))
		buf.WriteString(cast)
	}
	buf.WriteString(stmt.fragments[len(stmt.fragments)-1])
	return buf.String(), args, nil
}

// sliceElems returns the elements of arg if it is a slice that should be
// expanded.
func sliceElems(arg interface{}) ([]interface{}, bool) {
	switch arg.(type) {
	case nil, string, []byte, driver.Valuer:
		return nil, false
	}
	rv := reflect.ValueOf(arg)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	elems := make([]interface{}, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, true
}
