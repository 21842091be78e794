package pdf

import (
	"fmt"
	"strings"
	"time"
)

var psEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// Pdfmarks returns the Ghostscript pdfmark program that sets the document
// title and modification date.
func Pdfmarks(title string, modified time.Time) string {
	return fmt.Sprintf("[ /Title (%s)\n  /ModDate (D:%s)\n  /DOCINFO pdfmark\n",
		psEscaper.Replace(title), modified.Format("200601021504-0700"))
}

// DecryptArgs builds the qpdf argument vector that writes a decrypted copy of input.
func DecryptArgs(program, input, output string) []string {
	return []string{program, "--decrypt", input, output}
}

// GhostscriptArgs builds the gs argument vector that rewrites input with marks applied.
func GhostscriptArgs(program, input, marks, output string) []string {
	return []string{
		program, "-q", "-dBATCH", "-dNOPAUSE", "-sDEVICE=pdfwrite",
		"-sOutputFile=" + output, input, marks,
	}
}
