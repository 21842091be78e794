package rename

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"filetools/internal/testsupport"
)

func TestFixName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my file.txt", "my_file.txt"},
		{"dir with space/a  b\tc.txt", "dir with space/a_b_c.txt"},
		{" lead and trail ", "lead_and_trail"},
		{"./x/../plain.txt", "plain.txt"},
		{"nochange", "nochange"},
		{"/abs/path/two words", "/abs/path/two_words"},
	}
	for _, tt := range tests {
		if got := FixName(tt.in, Options{}); got != tt.want {
			t.Fatalf("FixName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFixNameNFC(t *testing.T) {
	decomposed := "cafe\u0301 menu.txt"
	if got := FixName(decomposed, Options{NFC: true}); got != "caf\u00e9_menu.txt" {
		t.Fatalf("expected composed name, got %q", got)
	}
	if got := FixName(decomposed, Options{}); got != "cafe\u0301_menu.txt" {
		t.Fatalf("expected decomposed name to be kept, got %q", got)
	}
}

func TestRename(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "holiday photo.jpg")
	testsupport.WriteFile(t, src, "jpg")

	target, changed, err := Rename(src, Options{})
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if !changed || target != filepath.Join(dir, "holiday_photo.jpg") {
		t.Fatalf("unexpected result %q changed=%v", target, changed)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
}

func TestRenameUnchanged(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "plain.txt")
	testsupport.WriteFile(t, src, "x")

	_, changed, err := Rename(src, Options{})
	if err != nil || changed {
		t.Fatalf("expected no-op, got changed=%v err=%v", changed, err)
	}
}

func TestRenameKeepsExistingTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a b")
	dst := filepath.Join(dir, "a_b")
	testsupport.WriteFile(t, src, "new")
	testsupport.WriteFile(t, dst, "old")

	_, changed, err := Rename(src, Options{})
	if changed || !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected fs.ErrExist, got changed=%v err=%v", changed, err)
	}
	if testsupport.ReadFile(t, dst) != "old" {
		t.Fatal("existing target was overwritten")
	}
}

func TestRenameMissingSource(t *testing.T) {
	_, _, err := Rename(filepath.Join(t.TempDir(), "no such file"), Options{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}
