// Package gitlog turns `git log --oneline` output into a LaTeX fragment.
package gitlog

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"filetools/internal/procexec"
)

// Header starts every generated file.
const Header = `% vim:fileencoding=utf-8:ft=tex
% Automatically generated by mkhistory

`

const texSpecials = "_#%${}"

var (
	trailingPeriod = regexp.MustCompile(`(?m)\.$`)
	refDecoration  = regexp.MustCompile(`\(.*\) `)
)

// Log returns the one-line log of the repository in dir.
func Log(ctx context.Context, git, dir string) (string, error) {
	out, err := procexec.Output(ctx, procexec.Command{Args: []string{git, "log", "--oneline"}, Dir: dir})
	if err != nil {
		return "", fmt.Errorf("git log: %w", err)
	}
	return out, nil
}

// EscapeTeX prefixes each TeX special character with a backslash unless it is
// already escaped.
func EscapeTeX(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	var prev rune
	for _, r := range s {
		if strings.ContainsRune(texSpecials, r) && prev != '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// Format reformats one-line log text as LaTeX: specials escaped, trailing
// periods dropped, the ref decoration stripped from the first line, and each
// commit hash set in typewriter type. Lines are joined with a forced break.
func Format(log string) string {
	txt := EscapeTeX(log)
	txt = trailingPeriod.ReplaceAllString(txt, "")
	raw := strings.Split(txt, "\n")
	raw[0] = refDecoration.ReplaceAllString(raw[0], "")

	lines := make([]string, 0, len(raw))
	for _, ln := range raw {
		if ln == "" {
			continue
		}
		lines = append(lines, `\texttt{`+strings.Replace(ln, " ", "} ", 1))
	}
	return strings.Join(lines, "\\\\\n")
}

// Write emits the header followed by the formatted log.
func Write(w io.Writer, log string) error {
	if _, err := io.WriteString(w, Header); err != nil {
		return err
	}
	_, err := io.WriteString(w, Format(log))
	return err
}
