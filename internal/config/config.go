package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Batch controls the worker pool shared by the batch commands.
type Batch struct {
	Workers            int `toml:"workers"`
	TaskTimeoutSeconds int `toml:"task_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// Journal configures the SQLite record of batch runs.
type Journal struct {
	Enabled            bool   `toml:"enabled"`
	Path               string `toml:"path"`
	LockTimeoutSeconds int    `toml:"lock_timeout_seconds"`
}

// Tools names the external programs the commands invoke.
type Tools struct {
	Convert  string `toml:"convert"`
	Flac     string `toml:"flac"`
	Exiftool string `toml:"exiftool"`
	Pdfinfo  string `toml:"pdfinfo"`
	Qpdf     string `toml:"qpdf"`
	GS       string `toml:"gs"`
	Git      string `toml:"git"`
}

// Dicom holds the crop geometry used by dicom2png. The defaults match a
// Philips flat detector, trimming 2048x2048 frames to 1574x2048.
type Dicom struct {
	Crop    string `toml:"crop"`
	Page    string `toml:"page"`
	Density int    `toml:"density"`
	Quality int    `toml:"quality"`
	Level   bool   `toml:"level"`
}

// Flac configures make-flac.
type Flac struct {
	TitlesFile string `toml:"titles_file"`
}

// MarkPhotos configures the copyright stamped by markphotos.
type MarkPhotos struct {
	Owner string `toml:"owner"`
}

// OTP configures the pad layout produced by genotp.
type OTP struct {
	Lines     int `toml:"lines"`
	Groups    int `toml:"groups"`
	GroupSize int `toml:"group_size"`
}

// Config encapsulates all configuration values for the filetools commands.
type Config struct {
	Batch      Batch      `toml:"batch"`
	Logging    Logging    `toml:"logging"`
	Journal    Journal    `toml:"journal"`
	Tools      Tools      `toml:"tools"`
	Dicom      Dicom      `toml:"dicom"`
	Flac       Flac       `toml:"flac"`
	MarkPhotos MarkPhotos `toml:"markphotos"`
	OTP        OTP        `toml:"otp"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded. The second and third results report
// the resolved path and whether a file was actually read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s does not exist", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
