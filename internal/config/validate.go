package config

import (
	"errors"
	"fmt"
	"regexp"
)

var geometryPattern = regexp.MustCompile(`^\d+x\d+[+-]\d+[+-]\d+$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateJournal(); err != nil {
		return err
	}
	if err := c.validateDicom(); err != nil {
		return err
	}
	return c.validateOTP()
}

func (c *Config) validateBatch() error {
	if c.Batch.Workers < 0 {
		return errors.New("batch.workers must be zero (one per CPU) or positive")
	}
	if c.Batch.TaskTimeoutSeconds < 0 {
		return errors.New("batch.task_timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warning", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "plain", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("logging rotation limits must not be negative")
	}
	return nil
}

func (c *Config) validateJournal() error {
	if c.Journal.Enabled && c.Journal.Path == "" {
		return errors.New("journal.path must be set when the journal is enabled")
	}
	if c.Journal.LockTimeoutSeconds < 0 {
		return errors.New("journal.lock_timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateDicom() error {
	if !geometryPattern.MatchString(c.Dicom.Crop) {
		return fmt.Errorf("dicom.crop: invalid geometry %q (want WxH+X+Y)", c.Dicom.Crop)
	}
	if !geometryPattern.MatchString(c.Dicom.Page) {
		return fmt.Errorf("dicom.page: invalid geometry %q (want WxH+X+Y)", c.Dicom.Page)
	}
	if c.Dicom.Density <= 0 {
		return errors.New("dicom.density must be positive")
	}
	if c.Dicom.Quality < 0 || c.Dicom.Quality > 100 {
		return errors.New("dicom.quality must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateOTP() error {
	if c.OTP.Lines <= 0 || c.OTP.Groups <= 0 || c.OTP.GroupSize <= 0 {
		return errors.New("otp.lines, otp.groups and otp.group_size must be positive")
	}
	if c.OTP.Lines > 99 {
		return errors.New("otp.lines must not exceed 99")
	}
	return nil
}
