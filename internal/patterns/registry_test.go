package patterns

import (
	"os"
	"testing"
)

func TestLoadDefaultPack(t *testing.T) {
	reg, err := Load([]string{"default"}, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rules := reg.Rules()
	if len(rules) == 0 {
		t.Fatal("expected at least one rule")
	}

	var sawEmail bool
	for _, r := range rules {
		if r.Label == "EMAIL" {
			sawEmail = true
			if r.Tier != 1 {
				t.Errorf("EMAIL tier = %d, want 1", r.Tier)
			}
		}
	}
	if !sawEmail {
		t.Error("expected EMAIL rule in default pack")
	}
}

func TestLoadUnknownPack(t *testing.T) {
	if _, err := Load([]string{"does-not-exist"}, nil); err == nil {
		t.Fatal("expected error for unknown pack")
	}
}

func TestLoadUnknownRootKeyFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/bad.yaml", []byte("name: bad\nbogus: true\npatterns: []\n"))

	if _, err := Load([]string{"bad"}, []string{dir}); err == nil {
		t.Fatal("expected error for unknown root key")
	}
}

func TestLoadUnknownValidatorFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/bad.yaml", []byte(`
name: bad
patterns:
  - name: x
    label: X
    patterns: ["a"]
    validator: not-a-real-validator
`))

	if _, err := Load([]string{"bad"}, []string{dir}); err == nil {
		t.Fatal("expected error for unknown validator")
	}
}

func TestLoadDuplicateLabelFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/dup.yaml", []byte(`
name: dup
patterns:
  - name: a
    label: X
    patterns: ["a"]
  - name: b
    label: X
    patterns: ["b"]
`))

	if _, err := Load([]string{"dup"}, []string{dir}); err == nil {
		t.Fatal("expected error for duplicate label")
	}
}

func TestLoadInvalidRegexFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/badregex.yaml", []byte(`
name: badregex
patterns:
  - name: a
    label: X
    patterns: ["("]
`))

	if _, err := Load([]string{"badregex"}, []string{dir}); err == nil {
		t.Fatal("expected error for invalid regex")
	}
}

func TestLuhnValid(t *testing.T) {
	cases := map[string]bool{
		"4111-1111-1111-1111": true,
		"4111-1111-1111-1112": false,
	}
	for text, want := range cases {
		if got := luhnValid(text); got != want {
			t.Errorf("luhnValid(%q) = %v, want %v", text, got, want)
		}
	}
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writeFile: %v", err)
	}
}
