package manifest

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const crateTypeKey = "crate-type"

// SetLibraryOutputKinds returns manifest text with lib.crate-type set to
// exactly kinds, in order. The document is validated first and a *ParseError
// is returned for malformed input. Bytes outside the edited value are kept
// as they were.
//
// The key is replaced in place when present, inserted under an existing
// [lib] header (or next to dotted lib.* keys) otherwise, and a new [lib]
// table is appended when the manifest has none.
func SetLibraryOutputKinds(text string, kinds []string) (string, error) {
	doc, err := decode(text)
	if err != nil {
		return "", err
	}

	if lib, ok := doc["lib"]; ok {
		if _, isTable := lib.(map[string]interface{}); !isTable {
			return "", fmt.Errorf("%w: lib is a %T, not a table", ErrUnsupportedLayout, lib)
		}
	}

	stmts, err := scanStatements(text)
	if err != nil {
		return "", fmt.Errorf("locating [lib] in manifest: %w", err)
	}

	value := renderStringArray(kinds)
	out, err := splice(text, stmts, value)
	if err != nil {
		return "", err
	}

	if err := verifyKinds(out, kinds); err != nil {
		return "", err
	}
	return out, nil
}

func splice(text string, stmts []statement, value string) (string, error) {
	nl := newline(text)

	// Existing key: replace only the value bytes.
	for _, st := range stmts {
		if st.kind == stmtKeyValue && pathEqual(st.path(), "lib", crateTypeKey) {
			return text[:st.valueStart] + value + text[st.end:], nil
		}
	}

	// lib defined as an inline table on the root (lib = { ... }).
	for _, st := range stmts {
		if st.kind == stmtKeyValue && pathEqual(st.path(), "lib") {
			return "", fmt.Errorf("%w: inline table at offset %d", ErrUnsupportedLayout, st.start)
		}
	}

	// [lib] header: insert the key on the line after it.
	for _, st := range stmts {
		if st.kind == stmtTable && pathEqual(st.table, "lib") {
			line := crateTypeKey + " = " + value + nl
			if st.lineEnd == len(text) {
				return text + nl + line, nil
			}
			at := st.lineEnd + 1
			return text[:at] + line + text[at:], nil
		}
	}

	// Dotted keys on the root table (lib.name = "..."): add a sibling.
	var last *statement
	for i := range stmts {
		st := &stmts[i]
		if st.kind == stmtKeyValue && len(st.table) == 0 && len(st.key) > 1 && st.key[0] == "lib" {
			last = st
		}
	}
	if last != nil {
		at := last.lineEnd
		if at > 0 && at < len(text) && text[at-1] == '\r' {
			at--
		}
		line := "lib." + crateTypeKey + " = " + value
		return text[:at] + nl + line + text[at:], nil
	}

	// No [lib] at all: append a new table.
	var b strings.Builder
	b.WriteString(text)
	if text != "" && !strings.HasSuffix(text, "\n") {
		b.WriteString(nl)
	}
	if strings.TrimSpace(text) != "" {
		b.WriteString(nl)
	}
	b.WriteString("[lib]" + nl)
	b.WriteString(crateTypeKey + " = " + value + nl)
	return b.String(), nil
}

// newline returns the line terminator used by text, so inserted lines match
// a CRLF manifest.
func newline(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// verifyKinds re-parses the edited document and checks the invariant that
// lib.crate-type holds exactly kinds.
func verifyKinds(text string, kinds []string) error {
	doc, err := decode(text)
	if err != nil {
		return fmt.Errorf("edited manifest no longer parses: %w", err)
	}
	lib, _ := doc["lib"].(map[string]interface{})
	raw, _ := lib[crateTypeKey].([]interface{})

	got := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("edited manifest has non-string crate-type entry %v", v)
		}
		got = append(got, s)
	}
	want := kinds
	if want == nil {
		want = []string{}
	}
	if !reflect.DeepEqual(got, want) {
		return fmt.Errorf("edited manifest has crate-type %v, want %v", got, want)
	}
	return nil
}

// decode parses text as a generic TOML document, mapping syntax errors to
// *ParseError with the decoder's position.
func decode(text string) (map[string]interface{}, error) {
	doc := map[string]interface{}{}
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		pe := &ParseError{Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	return doc, nil
}

func renderStringArray(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = quoteBasic(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// quoteBasic renders s as a TOML basic string.
func quoteBasic(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func pathEqual(path []string, want ...string) bool {
	if len(path) != len(want) {
		return false
	}
	for i := range path {
		if path[i] != want[i] {
			return false
		}
	}
	return true
}
