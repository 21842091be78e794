package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"filetools/internal/config"
)

// initConfig writes the sample configuration to path, or to the default
// location when path is empty. An existing file is left untouched.
func initConfig(w io.Writer, path string) error {
	target := strings.TrimSpace(path)
	var err error
	if target == "" {
		target, err = config.DefaultConfigPath()
	} else {
		target, err = config.ExpandPath(target)
	}
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("config file already exists at %s", target)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("check config path: %w", err)
	}

	if err := config.CreateSample(target); err != nil {
		return fmt.Errorf("create sample config: %w", err)
	}
	fmt.Fprintf(w, "Wrote sample configuration to %s\n", target)
	return nil
}
