package manifest

import (
	"fmt"
	"strconv"
	"strings"
)

type stmtKind int

const (
	stmtKeyValue stmtKind = iota
	stmtTable
	stmtArrayTable
)

// statement is one top-level TOML expression located by byte offsets in the
// source. Offsets let edits touch only the bytes they replace.
type statement struct {
	kind stmtKind

	// table is the enclosing table path for key/values, or the header path
	// for table statements.
	table []string
	// key is the (possibly dotted) key of a key/value, relative to table.
	key []string

	start      int // first byte of the statement
	valueStart int // first byte of the value (key/values only)
	end        int // one past the last byte of the statement
	lineEnd    int // offset of the terminating newline, or len(src)
}

// path returns the absolute key path of a key/value statement.
func (s statement) path() []string {
	p := make([]string, 0, len(s.table)+len(s.key))
	p = append(p, s.table...)
	return append(p, s.key...)
}

// scanStatements splits src into statements. src must already be valid TOML;
// the scanner only needs enough of the grammar to find statement and value
// boundaries.
func scanStatements(src string) ([]statement, error) {
	var (
		stmts []statement
		table []string
		i     int
	)

	for {
		i = skipSpaceAndComments(src, i)
		if i >= len(src) {
			return stmts, nil
		}

		if src[i] == '[' {
			st := statement{kind: stmtTable, start: i}
			j := i + 1
			if j < len(src) && src[j] == '[' {
				st.kind = stmtArrayTable
				j++
			}
			parts, next, err := scanKeyPath(src, skipBlank(src, j))
			if err != nil {
				return nil, err
			}
			next = skipBlank(src, next)
			closing := "]"
			if st.kind == stmtArrayTable {
				closing = "]]"
			}
			if !strings.HasPrefix(src[next:], closing) {
				return nil, fmt.Errorf("unterminated table header at offset %d", i)
			}
			st.end = next + len(closing)
			st.table = parts
			st.lineEnd = lineEnd(src, st.end)
			table = parts
			stmts = append(stmts, st)
			i = st.lineEnd
			continue
		}

		parts, next, err := scanKeyPath(src, i)
		if err != nil {
			return nil, err
		}
		next = skipBlank(src, next)
		if next >= len(src) || src[next] != '=' {
			return nil, fmt.Errorf("expected '=' after key at offset %d", i)
		}
		valueStart := skipBlank(src, next+1)
		valueEnd, err := scanValue(src, valueStart)
		if err != nil {
			return nil, err
		}
		st := statement{
			kind:       stmtKeyValue,
			table:      table,
			key:        parts,
			start:      i,
			valueStart: valueStart,
			end:        valueEnd,
			lineEnd:    lineEnd(src, valueEnd),
		}
		stmts = append(stmts, st)
		i = st.lineEnd
	}
}

// scanKeyPath reads a simple or dotted key starting at i.
func scanKeyPath(src string, i int) ([]string, int, error) {
	var parts []string
	for {
		part, next, err := scanSimpleKey(src, i)
		if err != nil {
			return nil, 0, err
		}
		parts = append(parts, part)
		next = skipBlank(src, next)
		if next < len(src) && src[next] == '.' {
			i = skipBlank(src, next+1)
			continue
		}
		return parts, next, nil
	}
}

func scanSimpleKey(src string, i int) (string, int, error) {
	if i >= len(src) {
		return "", 0, fmt.Errorf("unexpected end of input reading key")
	}
	switch src[i] {
	case '"':
		end, err := scanBasicString(src, i)
		if err != nil {
			return "", 0, err
		}
		key, err := strconv.Unquote(src[i:end])
		if err != nil {
			return "", 0, fmt.Errorf("invalid quoted key %s: %w", src[i:end], err)
		}
		return key, end, nil
	case '\'':
		end := strings.IndexByte(src[i+1:], '\'')
		if end < 0 {
			return "", 0, fmt.Errorf("unterminated literal key at offset %d", i)
		}
		return src[i+1 : i+1+end], i + end + 2, nil
	}

	j := i
	for j < len(src) && isBareKeyChar(src[j]) {
		j++
	}
	if j == i {
		return "", 0, fmt.Errorf("invalid key character %q at offset %d", src[i], i)
	}
	return src[i:j], j, nil
}

// scanValue returns the offset one past the end of the value starting at i.
func scanValue(src string, i int) (int, error) {
	if i >= len(src) {
		return 0, fmt.Errorf("missing value at end of input")
	}
	switch src[i] {
	case '"':
		if strings.HasPrefix(src[i:], `"""`) {
			return scanMultiline(src, i, `"""`, true)
		}
		return scanBasicString(src, i)
	case '\'':
		if strings.HasPrefix(src[i:], `'''`) {
			return scanMultiline(src, i, `'''`, false)
		}
		end := strings.IndexByte(src[i+1:], '\'')
		if end < 0 {
			return 0, fmt.Errorf("unterminated literal string at offset %d", i)
		}
		return i + end + 2, nil
	case '[':
		return scanArray(src, i)
	case '{':
		return scanInlineTable(src, i)
	}

	// Scalars: numbers, booleans, dates. Date-times may contain a space, so
	// read up to a delimiter and trim trailing blanks.
	j := i
	for j < len(src) && !strings.ContainsRune(",]}#\n", rune(src[j])) {
		j++
	}
	for j > i && (src[j-1] == ' ' || src[j-1] == '\t' || src[j-1] == '\r') {
		j--
	}
	if j == i {
		return 0, fmt.Errorf("missing value at offset %d", i)
	}
	return j, nil
}

func scanArray(src string, i int) (int, error) {
	j := i + 1
	for {
		j = skipSpaceAndComments(src, j)
		if j >= len(src) {
			return 0, fmt.Errorf("unterminated array at offset %d", i)
		}
		switch src[j] {
		case ']':
			return j + 1, nil
		case ',':
			j++
			continue
		}
		end, err := scanValue(src, j)
		if err != nil {
			return 0, err
		}
		j = end
	}
}

func scanInlineTable(src string, i int) (int, error) {
	j := i + 1
	for {
		j = skipBlank(src, j)
		if j >= len(src) {
			return 0, fmt.Errorf("unterminated inline table at offset %d", i)
		}
		switch src[j] {
		case '}':
			return j + 1, nil
		case ',':
			j++
			continue
		}
		_, next, err := scanKeyPath(src, j)
		if err != nil {
			return 0, err
		}
		next = skipBlank(src, next)
		if next >= len(src) || src[next] != '=' {
			return 0, fmt.Errorf("expected '=' in inline table at offset %d", next)
		}
		end, err := scanValue(src, skipBlank(src, next+1))
		if err != nil {
			return 0, err
		}
		j = end
	}
}

func scanBasicString(src string, i int) (int, error) {
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '"':
			return j + 1, nil
		case '\n':
			return 0, fmt.Errorf("unterminated string at offset %d", i)
		}
	}
	return 0, fmt.Errorf("unterminated string at offset %d", i)
}

// scanMultiline finds the closing delimiter of a multi-line string. Up to two
// extra quote characters directly before the delimiter belong to the content.
func scanMultiline(src string, i int, delim string, escapes bool) (int, error) {
	for j := i + len(delim); j < len(src); j++ {
		if escapes && src[j] == '\\' {
			j++
			continue
		}
		if strings.HasPrefix(src[j:], delim) {
			end := j + len(delim)
			for n := 0; n < 2 && end < len(src) && src[end] == delim[0]; n++ {
				end++
			}
			return end, nil
		}
	}
	return 0, fmt.Errorf("unterminated multi-line string at offset %d", i)
}

// skipSpaceAndComments skips whitespace, newlines and comments.
func skipSpaceAndComments(src string, i int) int {
	for i < len(src) {
		switch src[i] {
		case ' ', '\t', '\r', '\n':
			i++
		case '#':
			i = lineEnd(src, i)
		default:
			return i
		}
	}
	return i
}

// skipBlank skips spaces and tabs only.
func skipBlank(src string, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	return i
}

// lineEnd returns the offset of the next newline at or after i, or len(src).
func lineEnd(src string, i int) int {
	if n := strings.IndexByte(src[i:], '\n'); n >= 0 {
		return i + n
	}
	return len(src)
}

func isBareKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}
