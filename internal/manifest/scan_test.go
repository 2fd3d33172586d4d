package manifest

import (
	"reflect"
	"testing"
)

func TestScanStatements(t *testing.T) {
	src := `title = "x" # comment
date = 1979-05-27 07:32:00Z
"quoted.key" = 'lit'
a . b = [1, [2, 3], { c = "}" }]

[[bin]]
name = "tool"

[ lib ]
crate-type = ["cdylib"]
`
	stmts, err := scanStatements(src)
	if err != nil {
		t.Fatalf("scanStatements() error: %v", err)
	}

	type summary struct {
		kind  stmtKind
		path  []string
		value string
	}
	var got []summary
	for _, st := range stmts {
		s := summary{kind: st.kind}
		if st.kind == stmtKeyValue {
			s.path = st.path()
			s.value = src[st.valueStart:st.end]
		} else {
			s.path = st.table
		}
		got = append(got, s)
	}

	want := []summary{
		{stmtKeyValue, []string{"title"}, `"x"`},
		{stmtKeyValue, []string{"date"}, `1979-05-27 07:32:00Z`},
		{stmtKeyValue, []string{"quoted.key"}, `'lit'`},
		{stmtKeyValue, []string{"a", "b"}, `[1, [2, 3], { c = "}" }]`},
		{stmtArrayTable, []string{"bin"}, ""},
		{stmtKeyValue, []string{"bin", "name"}, `"tool"`},
		{stmtTable, []string{"lib"}, ""},
		{stmtKeyValue, []string{"lib", "crate-type"}, `["cdylib"]`},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("statements mismatch\n got: %+v\nwant: %+v", got, want)
	}
}

func TestScanMultilineStrings(t *testing.T) {
	src := "a = \"\"\"x \\\"\"\" still\"\"\"\"\nb = '''it's'''''\nc = 1\n"
	stmts, err := scanStatements(src)
	if err != nil {
		t.Fatalf("scanStatements() error: %v", err)
	}
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(stmts))
	}
	if got := src[stmts[1].valueStart:stmts[1].end]; got != "'''it's'''''" {
		t.Errorf("literal value = %q", got)
	}
}
