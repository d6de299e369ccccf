// Package export turns an adaptation result into downloadable files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/go-pdf/fpdf"

	"neuropath/internal/audio"
	"neuropath/internal/types"
)

// MarkdownHeading prefixes every Markdown export.
const MarkdownHeading = "# NeuroPath Adapted Content\n\n"

const (
	pdfMargin     = 15.0
	pdfTextWidth  = 180.0
	pdfLineHeight = 6.0
	pdfFontSize   = 12.0
)

// Format is an export file type; its value is the file extension.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
	FormatWAV      Format = "wav"
)

// TextFormats are the formats rendered from the result text.
var TextFormats = []Format{FormatText, FormatMarkdown, FormatPDF}

var (
	ErrEmpty         = errors.New("nothing to export")
	ErrUnknownFormat = errors.New("unknown export format")
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case FormatText, FormatMarkdown, FormatPDF, FormatWAV:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func PlainText(text string) []byte { return []byte(text) }

func Markdown(text string) []byte { return []byte(MarkdownHeading + text) }

// PDF lays the text out on A4 pages, wrapped to 180mm from a 15mm margin.
// Characters outside cp1252 are replaced by the core font translator.
func PDF(text string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("NeuroPath Adapted Content", true)
	pdf.SetMargins(pdfMargin, pdfMargin+5, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", pdfFontSize)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetX(pdfMargin)
	pdf.MultiCell(pdfTextWidth, pdfLineHeight, tr(text), "", "L", false)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// WAV encodes decoded speech for download.
func WAV(buf *audio.Buffer) ([]byte, error) {
	return audio.EncodeWAV(buf)
}

// Render produces the bytes for a text format.
func Render(format Format, text string) ([]byte, error) {
	if text == "" {
		return nil, ErrEmpty
	}
	switch format {
	case FormatText:
		return PlainText(text), nil
	case FormatMarkdown:
		return Markdown(text), nil
	case FormatPDF:
		return PDF(text)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// FileName is NeuroPath_Adapted_<PROFILE>_<unixMillis>.<ext>.
func FileName(profile types.Profile, t time.Time, format Format) string {
	return fmt.Sprintf("NeuroPath_Adapted_%s_%d.%s", profile, t.UnixMilli(), format)
}

// WriteFile writes data under dir, creating it if needed, and returns the path.
func WriteFile(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

var writeClipboard = clipboard.WriteAll

// CopyToClipboard places the result text on the system clipboard.
func CopyToClipboard(text string) error {
	if text == "" {
		return ErrEmpty
	}
	if clipboard.Unsupported {
		return errors.New("clipboard unsupported on this system")
	}
	return writeClipboard(text)
}
