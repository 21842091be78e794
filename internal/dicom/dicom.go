// Package dicom converts DICOM radiographs to PNG with ImageMagick convert,
// trimming the blank border a Philips flat detector leaves around a frame.
package dicom

import (
	"context"
	"strconv"
	"strings"

	"filetools/internal/batch"
	"filetools/internal/config"
	"filetools/internal/deps"
	"filetools/internal/procexec"
)

// levelCorrection is passed to -level when color level correction is requested.
const levelCorrection = "-35%,70%,0.5"

// Options controls the convert invocation.
type Options struct {
	Convert string
	Crop    string
	Page    string
	Density int
	Quality int
	Level   bool
}

// OptionsFromConfig builds Options from the [dicom] and [tools] sections.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Convert: cfg.Tools.Convert,
		Crop:    cfg.Dicom.Crop,
		Page:    cfg.Dicom.Page,
		Density: cfg.Dicom.Density,
		Quality: cfg.Dicom.Quality,
		Level:   cfg.Dicom.Level,
	}
}

// Requirement probes convert, which exits 1 when run without arguments.
func Requirement(opts Options) deps.Requirement {
	return deps.Requirement{
		Name:           "convert",
		Probe:          []string{opts.Convert},
		ExpectedStatus: 1,
		Description:    "ImageMagick convert, used to crop and re-encode DICOM frames",
	}
}

// OutputName returns the PNG path written for input.
func OutputName(input string) string {
	return strings.TrimSpace(input) + ".png"
}

// Args builds the convert argument vector for one file.
func Args(opts Options, input, output string) []string {
	args := []string{
		opts.Convert, input,
		"-units", "PixelsPerInch",
		"-density", strconv.Itoa(opts.Density),
		"-crop", opts.Crop,
		"-page", opts.Page,
		"-auto-gamma",
	}
	if opts.Quality > 0 {
		args = append(args, "-quality", strconv.Itoa(opts.Quality))
	}
	if opts.Level {
		args = append(args, "-level", levelCorrection)
	}
	return append(args, output)
}

// NewTask returns a batch task converting one DICOM file.
func NewTask(opts Options) batch.Task[string] {
	return func(ctx context.Context, input string) batch.Result[string] {
		output := OutputName(input)
		out := procexec.Run(ctx, procexec.Command{Args: Args(opts, input, output)})
		return batch.Result[string]{Output: output, Status: out.Status, Err: out.Err}
	}
}
