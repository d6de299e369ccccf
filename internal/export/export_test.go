package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"neuropath/internal/audio"
	"neuropath/internal/tester"
	"neuropath/internal/types"
)

func TestMarkdownContainsResultVerbatim(t *testing.T) {
	text := "Step 1: Mix.\n\nStep 2: Bake *gently*."
	md := string(Markdown(text))
	tester.True(t, strings.HasPrefix(md, MarkdownHeading), "heading expected")
	tester.Contains(t, md, text)
	tester.Eq(t, string(PlainText(text)), text)
}

func TestPDFProducesDocument(t *testing.T) {
	long := strings.Repeat("Short sentences help focus. ", 400)
	data, err := PDF(long)
	tester.NoErr(t, err)
	tester.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "pdf header expected")
}

func TestRenderRejectsEmptyAndUnknown(t *testing.T) {
	_, err := Render(FormatText, "")
	tester.True(t, err == ErrEmpty, "empty text must be rejected")

	_, err = Render(FormatWAV, "text")
	tester.True(t, err != nil, "wav is not a text format")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"txt": FormatText, ".MD": FormatMarkdown, " pdf ": FormatPDF, "wav": FormatWAV} {
		got, err := ParseFormat(in)
		tester.NoErr(t, err, in)
		tester.Eq(t, got, want)
	}
	_, err := ParseFormat("docx")
	tester.True(t, err != nil, "docx must be rejected")
}

func TestFileName(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	tester.Eq(t, FileName(types.ProfileDyslexia, ts, FormatPDF), "NeuroPath_Adapted_DYSLEXIA_1700000000123.pdf")
	tester.Eq(t, FileName(types.ProfileAutisticLogic, ts, FormatMarkdown), "NeuroPath_Adapted_AUTISTIC_LOGIC_1700000000123.md")
}

func TestWriteFileCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	path, err := WriteFile(dir, "a.txt", []byte("hello"))
	tester.NoErr(t, err)

	got, err := os.ReadFile(path)
	tester.NoErr(t, err)
	tester.Eq(t, string(got), "hello")
}

func TestWAVExport(t *testing.T) {
	buf := &audio.Buffer{Samples: []float32{0, 0.5, -0.5}, SampleRate: audio.SampleRate, Channels: audio.Channels}
	data, err := WAV(buf)
	tester.NoErr(t, err)
	tester.Eq(t, string(data[:4]), "RIFF")
	tester.Eq(t, len(data), 44+len(buf.Samples)*2)
}

func TestCopyToClipboardUsesWriter(t *testing.T) {
	var got string
	orig := writeClipboard
	writeClipboard = func(s string) error { got = s; return nil }
	defer func() { writeClipboard = orig }()

	err := CopyToClipboard("adapted")
	if err != nil && !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("unexpected error: %v", err)
	}
	if err == nil {
		tester.Eq(t, got, "adapted")
	}
	tester.True(t, CopyToClipboard("") == ErrEmpty, "empty text must be rejected")
}
