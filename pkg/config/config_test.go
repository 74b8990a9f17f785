package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	if err != nil {
		t.Errorf("got error %v, want nil", err)
	}
	if cfg != Default() {
		t.Errorf("got config %v, want default", cfg)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeRc(t, ""))
	if err != nil {
		t.Errorf("got error %v, want nil", err)
	}
	if cfg != Default() {
		t.Errorf("got config %v, want default", cfg)
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeRc(t, `
keys:
  clear: x
  exit: Q
display:
  max-height: 5
`))
	if err != nil {
		t.Fatalf("got error %v, want nil", err)
	}
	want := Config{
		Keys:    Keys{Clear: "x", Exit: "Q"},
		Display: Display{MaxHeight: 5},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("got config %v, want %v", cfg, want)
	}
}

var badRcTests = []struct {
	name       string
	rc         string
	wantErrSub string
}{
	{
		"unknown field",
		"keys:\n  quit: q\n",
		"field quit not found",
	},
	{
		"multi-character key",
		"keys:\n  clear: abc\n",
		"must be a single character",
	},
	{
		"negative max-height",
		"display:\n  max-height: -1\n",
		"must be non-negative",
	},
}

func TestLoad_BadRc(t *testing.T) {
	for _, test := range badRcTests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := Load(writeRc(t, test.rc))
			if err == nil {
				t.Fatalf("got nil error with config %v, want error", cfg)
			}
			if !strings.Contains(err.Error(), test.wantErrSub) {
				t.Errorf("got error %q, want error containing %q",
					err, test.wantErrSub)
			}
			if cfg != Default() {
				t.Errorf("got config %v, want default", cfg)
			}
		})
	}
}

func writeRc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rc.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
