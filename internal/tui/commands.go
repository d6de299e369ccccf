package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"neuropath/internal/audio"
	"neuropath/internal/export"
	"neuropath/internal/ingest"
	"neuropath/internal/session"
	"neuropath/internal/types"
)

const toastDuration = 4 * time.Second

type adaptDoneMsg struct {
	res types.AdaptationResult
	err error
}

type speechDoneMsg struct{ err error }

type chatDoneMsg struct {
	msg types.ChatMessage
	err error
}

type exportDoneMsg struct {
	path   string
	copied bool
	err    error
}

type attachDoneMsg struct {
	att *types.Attachment
	err error
}

type toastMsg struct {
	text  string
	isErr bool
}

type toastExpiredMsg struct{ id int }

func showToast(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: text, isErr: isErr} }
}

func (m *Model) adaptCmd() tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		res, err := sess.Adapt(ctx)
		return adaptDoneMsg{res: res, err: err}
	}
}

func (m *Model) readAloudCmd() tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		return speechDoneMsg{err: sess.ReadAloud(ctx)}
	}
}

func (m *Model) chatCmd(text string) tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		msg, err := sess.Chat(ctx, text)
		return chatDoneMsg{msg: msg, err: err}
	}
}

func (m *Model) exportCmd(k string) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		if k == "c" {
			return exportDoneMsg{copied: true, err: sess.CopyResult()}
		}
		var format export.Format
		switch k {
		case "t":
			format = export.FormatText
		case "m":
			format = export.FormatMarkdown
		case "p":
			format = export.FormatPDF
		case "w":
			format = export.FormatWAV
		default:
			return nil
		}
		path, err := sess.Export(format, "")
		return exportDoneMsg{path: path, err: err}
	}
}

func (m *Model) attachCmd(path string) tea.Cmd {
	maxBytes := m.maxBytes
	return func() tea.Msg {
		att, err := ingest.ReadAttachment(path, maxBytes)
		return attachDoneMsg{att: att, err: err}
	}
}

// errorText is the user-facing wording for a failed action.
func errorText(err error) string {
	switch {
	case errors.Is(err, types.ErrNoContent):
		return "Please provide content, a URL, or a search topic."
	case errors.Is(err, session.ErrNoResult):
		return "Adapt some content first."
	case errors.Is(err, session.ErrNoAudio):
		return "Use Read Aloud first, then export the audio."
	case errors.Is(err, ingest.ErrUnsupportedType):
		return "Only images, PDFs and plain text files can be attached."
	case errors.Is(err, ingest.ErrTooLarge):
		return "That file is too large."
	case errors.Is(err, audio.ErrNoPlayer):
		return "No audio player found."
	default:
		return "Error processing content. Ensure the text is extracted correctly."
	}
}
