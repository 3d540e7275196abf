package parser

import (
	"strings"
	"testing"

	"github.com/signalforge/dotenv-go/internal/dotenverr"
)

func parseOK(t *testing.T, input string) map[string]string {
	t.Helper()
	entries, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", input, err)
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Key] = string(e.Value)
	}
	return out
}

func TestBasicAssignments(t *testing.T) {
	input := "APP_NAME=MyApp\nDEBUG=false\nEMPTY_VAR=\nGREETING=\"Hello, World!\"\nSINGLE='literal $NO_EXPAND'\n"
	got := parseOK(t, input)

	want := map[string]string{
		"APP_NAME":  "MyApp",
		"DEBUG":     "false",
		"EMPTY_VAR": "",
		"GREETING":  "Hello, World!",
		"SINGLE":    "literal $NO_EXPAND",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestInlineCommentAndLiteralHash(t *testing.T) {
	input := "VAL=hello # trailing\nHASH=hello#middle\n"
	got := parseOK(t, input)

	if got["VAL"] != "hello" {
		t.Errorf("VAL = %q, want %q", got["VAL"], "hello")
	}
	if got["HASH"] != "hello#middle" {
		t.Errorf("HASH = %q, want %q", got["HASH"], "hello#middle")
	}
}

func TestMultilineAndEscapes(t *testing.T) {
	input := "ML=\"line1\nline2\nline3\"\nESC=\"tab:\\there\"\nQ=\"say \\\"hi\\\"\"\n"
	got := parseOK(t, input)

	if got["ML"] != "line1\nline2\nline3" {
		t.Errorf("ML = %q, want embedded newlines", got["ML"])
	}
	if got["ESC"] != "tab:\there" {
		t.Errorf("ESC = %q, want %q", got["ESC"], "tab:\there")
	}
	if got["Q"] != `say "hi"` {
		t.Errorf("Q = %q, want %q", got["Q"], `say "hi"`)
	}
}

func TestSingleQuoteEscapeOnlyApostrophe(t *testing.T) {
	got := parseOK(t, `A='it\'s here'` + "\n" + `B='keep \n literal'` + "\n")
	if got["A"] != "it's here" {
		t.Errorf("A = %q, want %q", got["A"], "it's here")
	}
	if got["B"] != `keep \n literal` {
		t.Errorf("B = %q, want %q", got["B"], `keep \n literal`)
	}
}

func TestBacktickQuoting(t *testing.T) {
	got := parseOK(t, "CMD=`echo hi`\n")
	if got["CMD"] != "echo hi" {
		t.Errorf("CMD = %q, want %q", got["CMD"], "echo hi")
	}
}

func TestDuplicateKeysPreserveOrderLastWriterWinsAtPostProcess(t *testing.T) {
	entries, err := Parse([]byte("A=1\nB=2\nA=3\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3 (raw sequence preserved)", len(entries))
	}
	if entries[0].Key != "A" || string(entries[0].Value) != "1" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[2].Key != "A" || string(entries[2].Value) != "3" {
		t.Errorf("entries[2] = %+v", entries[2])
	}
}

func TestInvalidKeyStartCharacter(t *testing.T) {
	_, err := Parse([]byte("123BAD=value\n"))
	if !dotenverr.Is(err, dotenverr.KindParse) {
		t.Fatalf("expected KindParse, got %v", err)
	}
	var de *dotenverr.Error
	dotenverr.As(err, &de)
	if de.Line != 1 || de.Column != 1 {
		t.Errorf("Line/Column = %d/%d, want 1/1", de.Line, de.Column)
	}
}

func TestUnterminatedQuotedString(t *testing.T) {
	_, err := Parse([]byte(`KEY="unterminated`))
	if !dotenverr.Is(err, dotenverr.KindParse) {
		t.Fatalf("expected KindParse, got %v", err)
	}
	if !strings.Contains(err.Error(), "Unterminated") {
		t.Errorf("error message = %q, want it to mention Unterminated", err.Error())
	}
}

func TestUnterminatedSingleQuotedString(t *testing.T) {
	_, err := Parse([]byte(`KEY='unterminated`))
	if !strings.Contains(err.Error(), "Unterminated") {
		t.Errorf("error message = %q, want it to mention Unterminated", err.Error())
	}
}

func TestInvalidCharacterInKeyName(t *testing.T) {
	_, err := Parse([]byte("FOO.BAR=value\n"))
	if !dotenverr.Is(err, dotenverr.KindParse) {
		t.Fatalf("expected KindParse, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid character in key name") {
		t.Errorf("error message = %q", err.Error())
	}
}

func TestUnexpectedCharacterAfterQuotedValue(t *testing.T) {
	_, err := Parse([]byte("A=\"ok\"x\n"))
	if !dotenverr.Is(err, dotenverr.KindParse) {
		t.Fatalf("expected KindParse, got %v", err)
	}
	if !strings.Contains(err.Error(), "Unexpected character after quoted value") {
		t.Errorf("error message = %q", err.Error())
	}
}

func TestBlankLinesAndComments(t *testing.T) {
	got := parseOK(t, "\n# a comment\n\nA=1\n# another\nB=2\n")
	if got["A"] != "1" || got["B"] != "2" {
		t.Errorf("got = %+v", got)
	}
}

func TestKeyWithNoEqualsAtEOF(t *testing.T) {
	got := parseOK(t, "ALONE")
	v, ok := got["ALONE"]
	if !ok || v != "" {
		t.Errorf("ALONE = (%q, %v), want (\"\", true)", v, ok)
	}
}

func TestParserIsStableAcrossRuns(t *testing.T) {
	input := "A=1\nB=\"two\"\nC='three'\nD=`four`\n"
	e1, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	e2, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(e1) != len(e2) {
		t.Fatalf("len mismatch across runs: %d vs %d", len(e1), len(e2))
	}
	for i := range e1 {
		if e1[i].Key != e2[i].Key || string(e1[i].Value) != string(e2[i].Value) {
			t.Errorf("entry %d differs across runs: %+v vs %+v", i, e1[i], e2[i])
		}
	}
}

func TestEmptyInput(t *testing.T) {
	entries, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}
