package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeEnv(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Dicom.Crop = strings.TrimSpace(c.Dicom.Crop)
	c.Dicom.Page = strings.TrimSpace(c.Dicom.Page)
	c.MarkPhotos.Owner = strings.TrimSpace(c.MarkPhotos.Owner)
	return nil
}

func (c *Config) normalizeEnv() error {
	if value, ok := os.LookupEnv("FILETOOLS_WORKERS"); ok && strings.TrimSpace(value) != "" {
		workers, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("FILETOOLS_WORKERS: %w", err)
		}
		c.Batch.Workers = workers
	}
	if value, ok := os.LookupEnv("FILETOOLS_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Journal.Path, err = expandPath(strings.TrimSpace(c.Journal.Path)); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	defaults := Default().Tools
	pick := func(value, fallback string) string {
		if v := strings.TrimSpace(value); v != "" {
			return v
		}
		return fallback
	}
	c.Tools.Convert = pick(c.Tools.Convert, defaults.Convert)
	c.Tools.Flac = pick(c.Tools.Flac, defaults.Flac)
	c.Tools.Exiftool = pick(c.Tools.Exiftool, defaults.Exiftool)
	c.Tools.Pdfinfo = pick(c.Tools.Pdfinfo, defaults.Pdfinfo)
	c.Tools.Qpdf = pick(c.Tools.Qpdf, defaults.Qpdf)
	c.Tools.GS = pick(c.Tools.GS, defaults.GS)
	c.Tools.Git = pick(c.Tools.Git, defaults.Git)
}
