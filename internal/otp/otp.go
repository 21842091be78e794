// Package otp generates old-fashioned one-time pads: numbered lines of
// random capital-letter groups, headed by a random identifier.
package otp

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// acceptBelow is the largest multiple of 26 that fits in a byte; bytes at
	// or above it are discarded so every letter is equally likely.
	acceptBelow = 26 * 9
	headerLen   = 10
)

// Layout describes the shape of a pad.
type Layout struct {
	Lines     int
	Groups    int
	GroupSize int
}

// DefaultLayout is 65 lines of 12 groups of 5 letters.
func DefaultLayout() Layout {
	return Layout{Lines: 65, Groups: 12, GroupSize: 5}
}

// Validate rejects layouts that cannot be printed.
func (l Layout) Validate() error {
	if l.Lines <= 0 || l.Groups <= 0 || l.GroupSize <= 0 {
		return errors.New("pad layout needs positive lines, groups and group size")
	}
	if l.Lines > 99 {
		return fmt.Errorf("pad layout: %d lines do not fit two-digit line numbers", l.Lines)
	}
	return nil
}

// Generator draws letters from a byte source.
type Generator struct {
	src *bufio.Reader
}

// NewGenerator reads randomness from r; nil selects crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{src: bufio.NewReader(r)}
}

// Letters returns n uniformly distributed capital letters.
func (g *Generator) Letters(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	for b.Len() < n {
		c, err := g.src.ReadByte()
		if err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		if c >= acceptBelow {
			continue
		}
		b.WriteByte(alphabet[int(c)%len(alphabet)])
	}
	return b.String(), nil
}

// Header returns the identification line printed above the pad.
func (g *Generator) Header() (string, error) {
	id, err := g.Letters(headerLen)
	if err != nil {
		return "", err
	}
	return "+++++ " + id + " +++++", nil
}

// Pad returns the numbered pad lines without a trailing newline.
func (g *Generator) Pad(layout Layout) (string, error) {
	if err := layout.Validate(); err != nil {
		return "", err
	}
	lines := make([]string, 0, layout.Lines)
	for num := 1; num <= layout.Lines; num++ {
		fields := make([]string, 0, layout.Groups+1)
		fields = append(fields, fmt.Sprintf("%02d ", num))
		for range layout.Groups {
			group, err := g.Letters(layout.GroupSize)
			if err != nil {
				return "", err
			}
			fields = append(fields, group)
		}
		lines = append(lines, strings.Join(fields, " "))
	}
	return strings.Join(lines, "\n"), nil
}

// Write prints the header and the pad to w.
func Write(w io.Writer, g *Generator, layout Layout) error {
	header, err := g.Header()
	if err != nil {
		return err
	}
	pad, err := g.Pad(layout)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", header, pad)
	return err
}
