package exif

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"filetools/internal/testsupport"
)

func TestParseCreateDate(t *testing.T) {
	got, err := ParseCreateDate("Create Date                     : 2019:05:04 12:34:56\n")
	if err != nil {
		t.Fatalf("ParseCreateDate: %v", err)
	}
	want := time.Date(2019, 5, 4, 12, 34, 56, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseCreateDateWithSubseconds(t *testing.T) {
	got, err := ParseCreateDate("Create Date : 2021:01:02 03:04:05.67+01:00")
	if err != nil {
		t.Fatalf("ParseCreateDate: %v", err)
	}
	if got.Year() != 2021 || got.Second() != 5 {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseCreateDateMissing(t *testing.T) {
	for _, in := range []string{"", "\n", "Create Date : 0000:00:00 00:00:00", "Create Date : soon"} {
		if _, err := ParseCreateDate(in); !errors.Is(err, ErrNoCreateDate) {
			t.Fatalf("expected ErrNoCreateDate for %q, got %v", in, err)
		}
	}
}

func TestStampArgs(t *testing.T) {
	got := StampArgs("exiftool", 2019, "Jane Doe <jane@example.org>", "p.jpg")
	want := []string{
		"exiftool",
		"-Copyright=Copyright (C) 2019 Jane Doe <jane@example.org>",
		"-Comment=Copyright © 2019 Jane Doe <jane@example.org>",
		"-overwrite_original",
		"-q",
		"p.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected args:\n got %q\nwant %q", got, want)
	}
}

func newStub(t *testing.T, dir, date string) (string, string) {
	t.Helper()
	logPath := filepath.Join(dir, "stamp.log")
	stub := testsupport.StubBinary(t, filepath.Join(dir, "bin"), "exiftool", `
if [ "$1" = "-CreateDate" ]; then
  echo "Create Date                     : `+date+`"
  exit 0
fi
for a in "$@"; do echo "$a" >> `+logPath+`; done
exit 0`)
	return stub, logPath
}

func TestTaskStampsAndSetsTimes(t *testing.T) {
	dir := t.TempDir()
	photo := filepath.Join(dir, "photo.jpg")
	testsupport.WriteFile(t, photo, "jpeg")
	stub, logPath := newStub(t, dir, "2018:07:01 08:09:10")

	res := NewTask(stub, "Jane")(context.Background(), photo)
	if !res.OK() {
		t.Fatalf("expected success, got status %d err %v", res.Status, res.Err)
	}

	logged := testsupport.ReadFile(t, logPath)
	if !strings.Contains(logged, "-Copyright=Copyright (C) 2018 Jane\n") {
		t.Fatalf("unexpected stamp args:\n%s", logged)
	}
	info, err := os.Stat(photo)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2018, 7, 1, 8, 9, 10, 0, time.Local)
	if !info.ModTime().Equal(want) {
		t.Fatalf("expected mtime %v, got %v", want, info.ModTime())
	}
}

func TestTaskWithoutCreateDate(t *testing.T) {
	dir := t.TempDir()
	stub := testsupport.StubBinary(t, filepath.Join(dir, "bin"), "exiftool", "exit 0")

	res := NewTask(stub, "Jane")(context.Background(), filepath.Join(dir, "x.jpg"))
	if res.OK() || !errors.Is(res.Err, ErrNoCreateDate) {
		t.Fatalf("expected ErrNoCreateDate, got status %d err %v", res.Status, res.Err)
	}
}

func TestTaskReportsExiftoolStatus(t *testing.T) {
	dir := t.TempDir()
	stub := testsupport.StubBinary(t, filepath.Join(dir, "bin"), "exiftool", "exit 2")

	res := NewTask(stub, "Jane")(context.Background(), filepath.Join(dir, "x.jpg"))
	if res.Status != 2 || res.Err == nil {
		t.Fatalf("expected status 2 with error, got %d %v", res.Status, res.Err)
	}
}
