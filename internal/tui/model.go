// Package tui is the terminal front-end for a NeuroPath session.
package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"neuropath/internal/session"
)

type focusArea int

const (
	focusTopic focusArea = iota
	focusURL
	focusText
	focusAttachment
	focusChat
	focusCount
)

// Options configures the model.
type Options struct {
	Session  *session.Session
	MaxBytes int64
	Logger   *slog.Logger
}

type Model struct {
	ctx  context.Context
	sess *session.Session
	log  *slog.Logger
	keys keyMap
	help help.Model

	maxBytes int64

	focus      focusArea
	topic      textinput.Model
	url        textinput.Model
	text       textarea.Model
	attachPath textinput.Model
	chatInput  textinput.Model

	result   viewport.Model
	chat     viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	rendered   string
	exportOpen bool

	toast      string
	toastError bool
	toastID    int

	width  int
	height int
}

func New(ctx context.Context, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	topic := textinput.New()
	topic.Placeholder = "Search topic, e.g. how volcanoes work"
	topic.Prompt = ""

	url := textinput.New()
	url.Placeholder = "https://..."
	url.Prompt = ""

	text := textarea.New()
	text.Placeholder = "Paste text here (or a note to go with the URL)"
	text.ShowLineNumbers = false
	text.SetHeight(5)

	attach := textinput.New()
	attach.Placeholder = "Path to an image, PDF or .txt file"
	attach.Prompt = ""

	chatInput := textinput.New()
	chatInput.Placeholder = "Ask your Cognitive Ally..."
	chatInput.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:        ctx,
		sess:       opts.Session,
		log:        logger,
		keys:       defaultKeyMap(),
		help:       help.New(),
		maxBytes:   opts.MaxBytes,
		topic:      topic,
		url:        url,
		text:       text,
		attachPath: attach,
		chatInput:  chatInput,
		result:     viewport.New(60, 12),
		chat:       viewport.New(40, 12),
		spinner:    sp,
		width:      100,
		height:     40,
	}
	m.setFocus(focusTopic)
	m.refreshChat()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	m.topic.Blur()
	m.url.Blur()
	m.text.Blur()
	m.attachPath.Blur()
	m.chatInput.Blur()
	switch f {
	case focusTopic:
		m.topic.Focus()
	case focusURL:
		m.url.Focus()
	case focusText:
		m.text.Focus()
	case focusAttachment:
		m.attachPath.Focus()
	case focusChat:
		m.chatInput.Focus()
	}
}
