package types

import (
	"errors"
	"strings"
)

// ErrNoContent is returned when an adaptation is requested without any text,
// URL, search topic or attachment.
var ErrNoContent = errors.New("please provide content, a URL, or a search topic")

// SourceKind tags the active variant of a Source.
type SourceKind string

const (
	SourceNone   SourceKind = ""
	SourceText   SourceKind = "text"
	SourceURL    SourceKind = "url"
	SourceSearch SourceKind = "search"
)

// Source is the text-bearing content the user wants adapted. Exactly one
// variant is active at a time; the zero value has none.
type Source struct {
	kind  SourceKind
	value string
	note  string
}

// FreeText builds a pasted-text source.
func FreeText(text string) Source {
	return Source{kind: SourceText, value: text}
}

// URLRef builds a URL source. note is free text sent alongside the URL.
func URLRef(url, note string) Source {
	return Source{kind: SourceURL, value: url, note: note}
}

// SearchTopic builds a search-grounded source.
func SearchTopic(topic string) Source {
	return Source{kind: SourceSearch, value: topic}
}

func (s Source) Kind() SourceKind { return s.kind }

// Empty reports whether no variant is active or the active value is blank.
func (s Source) Empty() bool {
	return s.kind == SourceNone || strings.TrimSpace(s.value) == ""
}

// Text returns the pasted text, or "" when another variant is active.
func (s Source) Text() string {
	if s.kind != SourceText {
		return ""
	}
	return s.value
}

// URL returns the referenced URL, or "" when another variant is active.
func (s Source) URL() string {
	if s.kind != SourceURL {
		return ""
	}
	return s.value
}

// Note returns the free text accompanying a URL source.
func (s Source) Note() string {
	if s.kind != SourceURL {
		return ""
	}
	return s.note
}

// Topic returns the search topic, or "" when another variant is active.
func (s Source) Topic() string {
	if s.kind != SourceSearch {
		return ""
	}
	return s.value
}

// Attachment is an uploaded document or image sent inline with a request.
type Attachment struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Empty reports whether a carries no payload.
func (a *Attachment) Empty() bool {
	return a == nil || len(a.Data) == 0
}
