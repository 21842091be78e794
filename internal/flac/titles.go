package flac

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoTracks is returned when no track listed in the titles file has a readable input.
var ErrNoTracks = errors.New("no tracks found")

// Album is the parsed content of a titles file.
type Album struct {
	Title  string
	Artist string
	Tracks []TrackTitle
}

// TrackTitle is one "NN title words" line.
type TrackTitle struct {
	Number int
	Title  string
}

// ReadTitles parses the titles file at path.
func ReadTitles(path string) (Album, error) {
	f, err := os.Open(path)
	if err != nil {
		return Album{}, fmt.Errorf("read titles %q: %w", path, err)
	}
	defer f.Close()

	album, err := ParseTitles(f)
	if err != nil {
		return Album{}, fmt.Errorf("%s: %w", path, err)
	}
	return album, nil
}

// ParseTitles reads the album title from the first line, the artist from the
// second, and one track per remaining non-blank line.
func ParseTitles(r io.Reader) (Album, error) {
	var (
		album  Album
		lineNo int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		switch lineNo {
		case 1:
			album.Title = strings.TrimSpace(line)
			continue
		case 2:
			album.Artist = strings.TrimSpace(line)
			continue
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		num, err := strconv.Atoi(words[0])
		if err != nil || num < 0 {
			return Album{}, fmt.Errorf("line %d: invalid track number %q", lineNo, words[0])
		}
		album.Tracks = append(album.Tracks, TrackTitle{
			Number: num,
			Title:  strings.Join(words[1:], " "),
		})
	}
	if err := scanner.Err(); err != nil {
		return Album{}, fmt.Errorf("scan titles: %w", err)
	}
	if lineNo < 2 {
		return Album{}, errors.New("titles file needs an album line and an artist line")
	}
	return album, nil
}
