// Package logging assembles the slog loggers used by the filetools commands.
//
// Three formats are available: "plain" writes `LEVEL: message key=value`
// lines for interactive use, "console" prefixes each line with a local
// timestamp, and "json" emits one object per record. An optional rotated log
// file (lumberjack) receives JSON records alongside the terminal output.
//
// Loggers are passed explicitly to the batch runner and tool packages; nothing
// here installs a process-wide default.
package logging
