// Package pdf decrypts PDF files and sets their document title to match the
// file name, so readers that show the title instead of the file name display
// something sensible.
package pdf

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filetools/internal/batch"
	"filetools/internal/config"
	"filetools/internal/deps"
	"filetools/internal/fileutil"
	"filetools/internal/logging"
	"filetools/internal/procexec"
)

// Actions reported in Result.Output.
const (
	ActionSkipped   = "skipped"
	ActionUnchanged = "unchanged"
	ActionRetitled  = "retitled"
	decryptedPrefix = "decrypted, "
)

// statusFailed is reported for failures that carry no exit status of their own.
const statusFailed = 1

// Tools names the programs used per file.
type Tools struct {
	Pdfinfo string
	Qpdf    string
	GS      string
}

// ToolsFromConfig picks the PDF programs from the [tools] section.
func ToolsFromConfig(cfg *config.Config) Tools {
	return Tools{Pdfinfo: cfg.Tools.Pdfinfo, Qpdf: cfg.Tools.Qpdf, GS: cfg.Tools.GS}
}

// Requirements probes pdfinfo, qpdf and gs.
func Requirements(tools Tools) []deps.Requirement {
	return []deps.Requirement{
		{Name: "pdfinfo", Probe: []string{tools.Pdfinfo, "-v"}, Description: "Reads the PDF info dictionary"},
		{Name: "qpdf", Probe: []string{tools.Qpdf, "--version"}, Description: "Decrypts protected PDF files"},
		{Name: "gs", Probe: []string{tools.GS, "--version"}, Description: "Rewrites PDF files with new metadata"},
	}
}

// Fixer retitles PDF files in place.
type Fixer struct {
	Tools  Tools
	Logger *slog.Logger
	// Now supplies the modification date written into the pdfmarks.
	Now func() time.Time
}

// Task returns the batch task for one file.
func (f *Fixer) Task() batch.Task[string] {
	return f.fix
}

func (f *Fixer) logger() *slog.Logger {
	if f.Logger == nil {
		return logging.NewNop()
	}
	return f.Logger
}

func (f *Fixer) fix(ctx context.Context, input string) batch.Result[string] {
	logger := f.logger()
	res := batch.Result[string]{Output: ActionSkipped}

	path, err := filepath.Abs(input)
	if err != nil {
		res.Status, res.Err = procexec.StatusNotStarted, err
		return res
	}

	info, status, err := ReadInfo(ctx, f.Tools.Pdfinfo, path)
	if err != nil {
		logger.Error(fmt.Sprintf("skipping %s; %v", input, err))
		res.Status, res.Err = nonZero(status), err
		return res
	}

	workDir, err := os.MkdirTemp("", "fix-pdftitle-*")
	if err != nil {
		res.Status, res.Err = procexec.StatusNotStarted, fmt.Errorf("create temp dir: %w", err)
		return res
	}
	defer os.RemoveAll(workDir)

	prefix := ""
	if info.Encrypted() {
		logger.Info(input + " is encrypted")
		decrypted := filepath.Join(workDir, filepath.Base(path))
		out := procexec.Run(ctx, procexec.Command{Args: DecryptArgs(f.Tools.Qpdf, path, decrypted)})
		if !out.OK() {
			res.Status, res.Err = out.Status, fmt.Errorf("could not decrypt %s; qpdf returned %d", input, out.Status)
			logger.Error(res.Err.Error())
			return res
		}
		if err := fileutil.ReplaceFile(decrypted, path); err != nil {
			res.Status, res.Err = statusFailed, err
			return res
		}
		logger.Debug(input + " decrypted")
		prefix = decryptedPrefix
	} else {
		logger.Debug(input + " is not encrypted")
	}

	title := TitleFromPath(path)
	if info["Title"] == title {
		logger.Debug("the title of " + input + " does not need to be changed")
		res.Output = prefix + ActionUnchanged
		return res
	}

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	marks := filepath.Join(workDir, "pdfmarks")
	if err := os.WriteFile(marks, []byte(Pdfmarks(title, now())), 0o644); err != nil {
		res.Status, res.Err = statusFailed, fmt.Errorf("write pdfmarks: %w", err)
		return res
	}
	rewritten := filepath.Join(workDir, "withmarks.pdf")
	out := procexec.Run(ctx, procexec.Command{Args: GhostscriptArgs(f.Tools.GS, path, marks, rewritten), Dir: workDir})
	if !out.OK() {
		if prefix != "" {
			res.Output = strings.TrimSuffix(prefix, ", ")
		}
		res.Status, res.Err = out.Status, fmt.Errorf("could not change title of %s; ghostscript returned %d", input, out.Status)
		logger.Error(res.Err.Error())
		return res
	}
	if err := fileutil.ReplaceFile(rewritten, path); err != nil {
		res.Status, res.Err = statusFailed, fmt.Errorf("could not replace %s: %w", input, err)
		logger.Error(res.Err.Error())
		return res
	}
	logger.Info("title of " + input + " changed")
	res.Output = prefix + ActionRetitled
	return res
}

func nonZero(status int) int {
	if status == 0 {
		return statusFailed
	}
	return status
}
