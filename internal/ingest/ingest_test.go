package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"neuropath/internal/tester"
	"neuropath/internal/types"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestReadAttachmentAcceptedTypes(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"notes.txt", []byte("plain notes"), "text/plain"},
		{"scan.png", pngHeader, "image/png"},
		{"paper.pdf", []byte("%PDF-1.4\n%fake"), "application/pdf"},
		{"noext", pngHeader, "image/png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			att, err := ReadAttachment(writeTemp(t, tc.name, tc.data), 0)
			tester.NoErr(t, err)
			tester.Eq(t, att.MIMEType, tc.want)
			tester.Eq(t, att.Name, tc.name)
			tester.Eq(t, att.Data, tc.data)
		})
	}
}

func TestReadAttachmentRejectsUnsupported(t *testing.T) {
	_, err := ReadAttachment(writeTemp(t, "page.html", []byte("<html></html>")), 0)
	tester.True(t, errors.Is(err, ErrUnsupportedType), "html must be rejected")
}

func TestReadAttachmentLimits(t *testing.T) {
	_, err := ReadAttachment(writeTemp(t, "big.txt", make([]byte, 11)), 10)
	tester.True(t, errors.Is(err, ErrTooLarge), "size cap expected")

	_, err = ReadAttachment(writeTemp(t, "empty.txt", nil), 10)
	tester.True(t, errors.Is(err, types.ErrNoContent), "empty file expected to fail")

	_, err = ReadAttachment(filepath.Join(t.TempDir(), "missing.txt"), 0)
	tester.True(t, err != nil, "missing file expected to fail")
}

func TestAccepted(t *testing.T) {
	tester.True(t, Accepted("image/jpeg"))
	tester.True(t, Accepted("text/plain; charset=utf-8"))
	tester.False(t, Accepted("application/zip"))
	tester.False(t, Accepted(""))
}
