package pdf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"filetools/internal/procexec"
)

// ErrNoInfo is returned when pdfinfo cannot produce an info dictionary.
var ErrNoInfo = errors.New("could not retrieve info dict")

// Info is the document information dictionary reported by pdfinfo. Looking
// up a missing key yields the empty string.
type Info map[string]string

// ParseInfo splits pdfinfo output into key/value pairs at the first colon.
func ParseInfo(output string) Info {
	info := Info{}
	for line := range strings.SplitSeq(output, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		info[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return info
}

// Encrypted reports whether pdfinfo flagged the document as encrypted.
func (i Info) Encrypted() bool {
	return strings.HasPrefix(i["Encrypted"], "yes")
}

// ReadInfo runs pdfinfo on path. The returned status is the pdfinfo exit status.
func ReadInfo(ctx context.Context, program, path string) (Info, int, error) {
	out := procexec.Run(ctx, procexec.Command{Args: []string{program, path}, Capture: true})
	if !out.OK() {
		if out.Err != nil {
			return nil, out.Status, fmt.Errorf("%w: %w", ErrNoInfo, out.Err)
		}
		return nil, out.Status, fmt.Errorf("%w: pdfinfo exited with status %d", ErrNoInfo, out.Status)
	}
	info := ParseInfo(string(out.Stdout))
	if len(info) == 0 {
		return nil, out.Status, ErrNoInfo
	}
	return info, out.Status, nil
}

// TitleFromPath derives a document title from a file name: underscores
// become spaces and the extension is dropped.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(base, "_", " ")
}
