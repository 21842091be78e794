// Package flac encodes cdparanoia WAV rips to FLAC, tagging each track from
// a plain-text titles file.
package flac

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"filetools/internal/batch"
	"filetools/internal/deps"
	"filetools/internal/logging"
	"filetools/internal/preflight"
	"filetools/internal/procexec"
)

// Track is one unit of work: a readable WAV input and its tags.
type Track struct {
	Number int
	Title  string
	Artist string
	Album  string
	Input  string
	Output string
}

// String identifies the track by its output file.
func (t Track) String() string {
	return t.Output
}

// InputName is the file name cdparanoia writes for track n.
func InputName(n int) string {
	return fmt.Sprintf("track%02d.cdda.wav", n)
}

// OutputName is the FLAC file name written for track n.
func OutputName(n int) string {
	return fmt.Sprintf("track%02d.flac", n)
}

// Requirement probes the flac encoder.
func Requirement(program string) deps.Requirement {
	return deps.Requirement{
		Name:        "flac",
		Probe:       []string{program},
		Description: "FLAC encoder",
	}
}

// Tracks resolves the album's titles to work items in dir, skipping entries
// whose WAV input is missing or unreadable.
func Tracks(album Album, dir string, logger *slog.Logger) ([]Track, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	var tracks []Track
	for _, t := range album.Tracks {
		input := filepath.Join(dir, InputName(t.Number))
		if check := preflight.CheckReadable("track", input); !check.Passed {
			logger.Debug("skipping track", logging.Int("track", t.Number), logging.String("reason", check.Detail))
			continue
		}
		tracks = append(tracks, Track{
			Number: t.Number,
			Title:  t.Title,
			Artist: album.Artist,
			Album:  album.Title,
			Input:  input,
			Output: filepath.Join(dir, OutputName(t.Number)),
		})
	}
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}
	return tracks, nil
}

// Args builds the flac argument vector for one track.
func Args(program string, t Track) []string {
	return []string{
		program, "--best", "--totally-silent",
		"-TARTIST=" + t.Artist,
		"-TALBUM=" + t.Album,
		"-TTITLE=" + t.Title,
		fmt.Sprintf("-TTRACKNUM=%02d", t.Number),
		"-o", t.Output,
		t.Input,
	}
}

// NewTask returns a batch task encoding one track.
func NewTask(program string, logger *slog.Logger) batch.Task[Track] {
	if logger == nil {
		logger = logging.NewNop()
	}
	return func(ctx context.Context, t Track) batch.Result[Track] {
		logger.Info(fmt.Sprintf("started conversion of %q to %q", t.Title, t.Output))
		out := procexec.Run(ctx, procexec.Command{Args: Args(program, t)})
		logger.Info(fmt.Sprintf("finished %q", t.Output))
		return batch.Result[Track]{Output: t.Output, Status: out.Status, Err: out.Err}
	}
}
