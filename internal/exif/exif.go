// Package exif stamps a copyright notice into photo metadata with exiftool
// and resets each file's timestamps to the moment the photo was taken.
package exif

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"filetools/internal/batch"
	"filetools/internal/deps"
	"filetools/internal/procexec"
)

// ErrNoCreateDate is returned when exiftool reports no usable CreateDate tag.
var ErrNoCreateDate = errors.New("no create date")

// statusNoCreateDate is reported for a file whose date could not be read
// even though exiftool itself exited 0.
const statusNoCreateDate = 1

const exifLayout = "2006:01:02 15:04:05"

// Requirement probes exiftool by asking for its version.
func Requirement(program string) deps.Requirement {
	return deps.Requirement{
		Name:        "exiftool",
		Probe:       []string{program, "-ver"},
		Description: "Reads and writes photo metadata",
	}
}

// ParseCreateDate extracts the timestamp from `exiftool -CreateDate` output,
// interpreting it in local time.
func ParseCreateDate(output string) (time.Time, error) {
	for line := range strings.SplitSeq(output, "\n") {
		_, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) < len(exifLayout) {
			continue
		}
		t, err := time.ParseInLocation(exifLayout, value[:len(exifLayout)], time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrNoCreateDate, value)
		}
		return t, nil
	}
	return time.Time{}, ErrNoCreateDate
}

// StampArgs builds the exiftool argument vector that writes the copyright
// and comment tags for year and owner. Values carry no shell quoting.
func StampArgs(program string, year int, owner, path string) []string {
	y := strconv.Itoa(year)
	return []string{
		program,
		"-Copyright=Copyright (C) " + y + " " + owner,
		"-Comment=Copyright © " + y + " " + owner,
		"-overwrite_original",
		"-q",
		path,
	}
}

// NewTask returns a batch task that stamps one file.
func NewTask(program, owner string) batch.Task[string] {
	return func(ctx context.Context, path string) batch.Result[string] {
		res := batch.Result[string]{Output: path}

		query := procexec.Run(ctx, procexec.Command{Args: []string{program, "-CreateDate", path}, Capture: true})
		if !query.OK() {
			res.Status, res.Err = query.Status, query.Err
			if res.Err == nil {
				res.Err = fmt.Errorf("read create date: %s exited with status %d", program, query.Status)
			}
			return res
		}
		created, err := ParseCreateDate(string(query.Stdout))
		if err != nil {
			res.Status, res.Err = statusNoCreateDate, fmt.Errorf("%s: %w", path, err)
			return res
		}

		stamp := procexec.Run(ctx, procexec.Command{Args: StampArgs(program, created.Year(), owner, path)})
		res.Status, res.Err = stamp.Status, stamp.Err
		if !stamp.OK() {
			return res
		}
		if err := os.Chtimes(path, created, created); err != nil {
			res.Err = fmt.Errorf("set times: %w", err)
		}
		return res
	}
}
