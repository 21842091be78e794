package flac

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"filetools/internal/batch"
	"filetools/internal/testsupport"
)

const sampleTitles = `Kind of Blue
Miles Davis
01 So What

02 Freddie   Freeloader
03 Blue in Green
`

func TestParseTitles(t *testing.T) {
	album, err := ParseTitles(strings.NewReader(sampleTitles))
	if err != nil {
		t.Fatalf("ParseTitles: %v", err)
	}
	if album.Title != "Kind of Blue" || album.Artist != "Miles Davis" {
		t.Fatalf("unexpected album header %+v", album)
	}
	want := []TrackTitle{{1, "So What"}, {2, "Freddie Freeloader"}, {3, "Blue in Green"}}
	if !reflect.DeepEqual(album.Tracks, want) {
		t.Fatalf("unexpected tracks %+v", album.Tracks)
	}
}

func TestParseTitlesRejectsBadNumber(t *testing.T) {
	_, err := ParseTitles(strings.NewReader("Album\nArtist\nxx Intro\n"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected line 3 error, got %v", err)
	}
}

func TestParseTitlesRequiresHeader(t *testing.T) {
	if _, err := ParseTitles(strings.NewReader("Album only\n")); err == nil {
		t.Fatal("expected missing artist line to fail")
	}
}

func TestReadTitlesMissingFile(t *testing.T) {
	if _, err := ReadTitles(filepath.Join(t.TempDir(), "titels")); err == nil {
		t.Fatal("expected error for missing titles file")
	}
}

func TestTracksSkipsMissingInputs(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, InputName(1)), "RIFF")
	testsupport.WriteFile(t, filepath.Join(dir, InputName(3)), "RIFF")
	album, err := ParseTitles(strings.NewReader(sampleTitles))
	if err != nil {
		t.Fatal(err)
	}

	tracks, err := Tracks(album, dir, nil)
	if err != nil {
		t.Fatalf("Tracks: %v", err)
	}
	if len(tracks) != 2 || tracks[0].Number != 1 || tracks[1].Number != 3 {
		t.Fatalf("unexpected tracks %+v", tracks)
	}
	if tracks[1].Output != filepath.Join(dir, "track03.flac") || tracks[1].Artist != "Miles Davis" {
		t.Fatalf("unexpected track %+v", tracks[1])
	}
}

func TestTracksNoneReadable(t *testing.T) {
	album := Album{Title: "A", Artist: "B", Tracks: []TrackTitle{{1, "x"}}}
	if _, err := Tracks(album, t.TempDir(), nil); !errors.Is(err, ErrNoTracks) {
		t.Fatalf("expected ErrNoTracks, got %v", err)
	}
}

func TestArgsUsesOwnTrackNumber(t *testing.T) {
	tr := Track{Number: 7, Title: "Seven", Artist: "Art", Album: "Alb", Input: "track07.cdda.wav", Output: "track07.flac"}
	got := Args("flac", tr)
	want := []string{
		"flac", "--best", "--totally-silent",
		"-TARTIST=Art", "-TALBUM=Alb", "-TTITLE=Seven", "-TTRACKNUM=07",
		"-o", "track07.flac", "track07.cdda.wav",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected args:\n got %q\nwant %q", got, want)
	}
}

func TestTaskReportsStatus(t *testing.T) {
	dir := t.TempDir()
	stub := testsupport.StubBinary(t, filepath.Join(dir, "bin"), "flac",
		`for a in "$@"; do case "$a" in -TTRACKNUM=02) exit 3;; esac; done
exit 0`)
	tracks := []Track{
		{Number: 1, Output: "track01.flac", Input: "track01.cdda.wav"},
		{Number: 2, Output: "track02.flac", Input: "track02.cdda.wav"},
	}
	results, err := batch.Run(context.Background(), tracks, NewTask(stub, nil), batch.Options[Track]{Workers: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	failures := batch.Failures(results)
	if len(failures) != 1 || failures[0].Item.Number != 2 || failures[0].Status != 3 {
		t.Fatalf("unexpected failures %+v", failures)
	}
}

func TestCheckReadableHonorsPermissions(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read any file")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, InputName(1))
	testsupport.WriteFile(t, path, "RIFF")
	if err := os.Chmod(path, 0o000); err != nil {
		t.Fatal(err)
	}
	album := Album{Title: "A", Artist: "B", Tracks: []TrackTitle{{1, "x"}}}
	if _, err := Tracks(album, dir, nil); !errors.Is(err, ErrNoTracks) {
		t.Fatalf("expected unreadable input to be skipped, got %v", err)
	}
}
