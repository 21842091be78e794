package config

// DefaultLogLevel applies when neither --log, [logging] level nor the
// utility itself picks a level.
const DefaultLogLevel = "warning"

const (
	defaultConfigPath        = "~/.config/filetools/config.toml"
	projectConfigName        = "filetools.toml"
	defaultLogFormat         = "plain"
	defaultLogMaxSizeMB      = 10
	defaultLogMaxBackups     = 3
	defaultLogMaxAgeDays     = 30
	defaultJournalPath       = "~/.local/share/filetools/journal.db"
	defaultJournalLockTimout = 10
	defaultDicomCrop         = "1574x2048+232+0"
	defaultDicomPage         = "1574x2048+0+0"
	defaultDicomDensity      = 300
	defaultDicomQuality      = 80
	defaultTitlesFile        = "titels"
	defaultOTPLines          = 65
	defaultOTPGroups         = 12
	defaultOTPGroupSize      = 5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Logging: Logging{
			Format:     defaultLogFormat,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
		Journal: Journal{
			Path:               defaultJournalPath,
			LockTimeoutSeconds: defaultJournalLockTimout,
		},
		Tools: Tools{
			Convert:  "convert",
			Flac:     "flac",
			Exiftool: "exiftool",
			Pdfinfo:  "pdfinfo",
			Qpdf:     "qpdf",
			GS:       "gs",
			Git:      "git",
		},
		Dicom: Dicom{
			Crop:    defaultDicomCrop,
			Page:    defaultDicomPage,
			Density: defaultDicomDensity,
			Quality: defaultDicomQuality,
		},
		Flac: Flac{TitlesFile: defaultTitlesFile},
		OTP: OTP{
			Lines:     defaultOTPLines,
			Groups:    defaultOTPGroups,
			GroupSize: defaultOTPGroupSize,
		},
	}
}
