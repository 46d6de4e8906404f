package source

import (
	"path/filepath"
	"testing"
)

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "client")

	inside, err := RelativePath(filepath.Join(base, "src", "App.vue"), base)
	if err != nil {
		t.Fatalf("RelativePath: %v", err)
	}
	if inside != "src/App.vue" {
		t.Errorf("inside base = %q, want src/App.vue", inside)
	}

	target := filepath.Join(tmp, "server", "main.ts")
	outside, err := RelativePath(target, base)
	if err != nil {
		t.Fatalf("RelativePath: %v", err)
	}
	if outside != filepath.ToSlash(target) {
		t.Errorf("outside base = %q, want absolute %q", outside, filepath.ToSlash(target))
	}
}

func TestRestoreCRLF(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a\nb\n", "a\r\nb\r\n"},
		{"a\r\nb\n", "a\r\nb\r\n"},
		{"", ""},
		{"\n", "\r\n"},
	}
	for _, tt := range tests {
		if got := string(restoreCRLF([]byte(tt.in))); got != tt.want {
			t.Errorf("restoreCRLF(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	got, changed := normalizeCRLF([]byte("a\rb\r\n"))
	if !changed || string(got) != "a\rb\n" {
		t.Errorf("normalizeCRLF = %q, %v", got, changed)
	}
	if _, changed := normalizeCRLF([]byte("a\rb")); changed {
		t.Error("lone CR must not count as a change")
	}
}
