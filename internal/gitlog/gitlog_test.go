package gitlog

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"filetools/internal/testsupport"
)

func TestEscapeTeX(t *testing.T) {
	got := EscapeTeX(`50% of $x_1 {a} #2 \_ok`)
	want := `50\% of \$x\_1 \{a\} \#2 \_ok`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormat(t *testing.T) {
	log := "a1b2c3d (HEAD -> main, origin/main) Fix parse_args.\n" +
		"e4f5a6b Add 100% coverage\n" +
		"0c0ffee Initial commit.\n"
	got := Format(log)
	want := `\texttt{a1b2c3d} Fix parse\_args` + "\\\\\n" +
		`\texttt{e4f5a6b} Add 100\% coverage` + "\\\\\n" +
		`\texttt{0c0ffee} Initial commit`
	if got != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", got, want)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestWriteIncludesHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "abc1234 Only commit\n"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), Header) {
		t.Fatalf("missing header:\n%s", buf.String())
	}
	if !strings.HasSuffix(buf.String(), `\texttt{abc1234} Only commit`) {
		t.Fatalf("unexpected body:\n%s", buf.String())
	}
}

func TestLogRunsGit(t *testing.T) {
	dir := t.TempDir()
	git := testsupport.StubBinary(t, filepath.Join(dir, "bin"), "git",
		`[ "$1 $2" = "log --oneline" ] || exit 2
echo "abc1234 Commit in $(pwd)"`)

	out, err := Log(context.Background(), git, dir)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if !strings.HasPrefix(out, "abc1234 Commit in ") {
		t.Fatalf("unexpected log %q", out)
	}
}

func TestLogFailure(t *testing.T) {
	git := testsupport.StubBinary(t, t.TempDir(), "git", "echo 'not a git repository' >&2; exit 128")
	if _, err := Log(context.Background(), git, t.TempDir()); err == nil || !strings.Contains(err.Error(), "128") {
		t.Fatalf("expected status 128 error, got %v", err)
	}
}
