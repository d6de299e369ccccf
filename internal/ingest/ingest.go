// Package ingest loads local files as adaptation attachments.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"neuropath/internal/types"
)

// DefaultMaxBytes caps attachment size when none is configured.
const DefaultMaxBytes int64 = 20 << 20

var (
	ErrUnsupportedType = errors.New("unsupported attachment type")
	ErrTooLarge        = errors.New("attachment too large")
)

// Accepted reports whether mimeType is an image, a PDF or plain text.
func Accepted(mimeType string) bool {
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mt, "image/") || mt == "application/pdf" || mt == "text/plain"
}

// DetectType guesses the MIME type from the extension, then from content.
// Parameters such as charset are dropped.
func DetectType(name string, head []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		if mt, _, err := mime.ParseMediaType(byExt); err == nil {
			return mt
		}
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(head))
	return mt
}

// ReadAttachment reads path into an Attachment. maxBytes <= 0 uses DefaultMaxBytes.
func ReadAttachment(path string, maxBytes int64) (*types.Attachment, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, filepath.Base(path), maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", types.ErrNoContent, filepath.Base(path))
	}

	mt := DetectType(path, data)
	if !Accepted(mt) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, filepath.Base(path), mt)
	}
	return &types.Attachment{Name: filepath.Base(path), MIMEType: mt, Data: data}, nil
}
