package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"neuropath/internal/assistant"
	"neuropath/internal/audio"
	"neuropath/internal/session"
	"neuropath/internal/types"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastMsg:
		m.toastID++
		m.toast, m.toastError = msg.text, msg.isErr
		id := m.toastID
		return m, tea.Tick(toastDuration, func(_ time.Time) tea.Msg { return toastExpiredMsg{id: id} })

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case adaptDoneMsg:
		return m, m.handleAdaptDone(msg)

	case speechDoneMsg:
		if errors.Is(msg.err, audio.ErrNoPlayer) {
			return m, showToast(errorText(msg.err), true)
		}
		return m, nil

	case chatDoneMsg:
		m.refreshChat()
		return m, nil

	case exportDoneMsg:
		switch {
		case msg.err != nil:
			return m, showToast(errorText(msg.err), true)
		case msg.copied:
			return m, showToast("Copied to clipboard.", false)
		default:
			return m, showToast("Saved "+msg.path, false)
		}

	case attachDoneMsg:
		if msg.err != nil {
			m.log.Warn("attachment rejected", "error", msg.err)
			return m, showToast(errorText(msg.err), true)
		}
		m.sess.SetAttachment(msg.att)
		m.attachPath.SetValue("")
		return m, showToast(fmt.Sprintf("Attached %s (%s)", msg.att.Name, msg.att.MIMEType), false)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleAdaptDone(msg adaptDoneMsg) tea.Cmd {
	switch {
	case errors.Is(msg.err, session.ErrSuperseded):
		return nil
	case msg.err != nil:
		return showToast(errorText(msg.err), true)
	}
	m.renderResult()
	return showToast("Your content is ready.", false)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.exportOpen {
		return m, m.handleExportKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case key.Matches(msg, m.keys.Profile):
		m.nextProfile()
		return m, nil
	case key.Matches(msg, m.keys.Adapt):
		return m, m.startAdapt()
	case key.Matches(msg, m.keys.ReadAloud):
		if !m.sess.CanReadAloud() {
			return m, nil
		}
		return m, m.readAloudCmd()
	case key.Matches(msg, m.keys.Export):
		if !m.sess.CanExport() {
			return m, showToast(errorText(session.ErrNoResult), true)
		}
		m.exportOpen = true
		return m, nil
	case key.Matches(msg, m.keys.Detach):
		m.sess.ClearAttachment()
		return m, nil
	case key.Matches(msg, m.keys.ExplainSimp):
		return m, m.sendChat(assistant.ExplainSimply.Message)
	case key.Matches(msg, m.keys.DefineTerms):
		return m, m.sendChat(assistant.DefineTerms.Message)
	case key.Matches(msg, m.keys.CheckIn):
		return m, m.sendChat(assistant.CheckIn.Message)
	case key.Matches(msg, m.keys.Quiz):
		return m, m.sendChat(assistant.Quiz.Message)
	}

	if msg.Type == tea.KeyEnter {
		switch m.focus {
		case focusChat:
			text := m.chatInput.Value()
			m.chatInput.SetValue("")
			return m, m.sendChat(text)
		case focusAttachment:
			path := strings.TrimSpace(m.attachPath.Value())
			if path == "" {
				return m, nil
			}
			return m, m.attachCmd(path)
		case focusTopic, focusURL:
			return m, m.startAdapt()
		}
	}

	return m, m.updateFocused(msg)
}

func (m *Model) handleExportKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Close) {
		m.exportOpen = false
		return nil
	}
	k := msg.String()
	for _, e := range exportKeys {
		if e.Key == k {
			m.exportOpen = false
			return m.exportCmd(k)
		}
	}
	return nil
}

func (m *Model) startAdapt() tea.Cmd {
	if m.sess.IsProcessing() {
		return nil
	}
	if !m.sess.CanAdapt() {
		return showToast(errorText(types.ErrNoContent), true)
	}
	return m.adaptCmd()
}

func (m *Model) sendChat(text string) tea.Cmd {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	cmd := m.chatCmd(text)
	// show the user turn before the reply arrives
	m.refreshChatWith(types.ChatMessage{Role: types.RoleUser, Text: text})
	return cmd
}

func (m *Model) nextProfile() {
	current := m.sess.Profile()
	for i, p := range types.Profiles {
		if p == current {
			_ = m.sess.SelectProfile(types.Profiles[(i+1)%len(types.Profiles)])
			return
		}
	}
	_ = m.sess.SelectProfile(types.Profiles[0])
}

// updateFocused forwards msg to the focused input and mirrors the field
// values into the session's source.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusTopic:
		m.topic, cmd = m.topic.Update(msg)
	case focusURL:
		m.url, cmd = m.url.Update(msg)
	case focusText:
		m.text, cmd = m.text.Update(msg)
	case focusAttachment:
		m.attachPath, cmd = m.attachPath.Update(msg)
		return cmd
	case focusChat:
		m.chatInput, cmd = m.chatInput.Update(msg)
		return cmd
	}
	m.syncSource()
	return cmd
}

// syncSource applies the field edited last. A search topic clears the URL
// and text fields; a URL or text clears the topic. Text typed next to a URL
// is sent as the URL's note.
func (m *Model) syncSource() {
	switch m.focus {
	case focusTopic:
		topic := m.topic.Value()
		if strings.TrimSpace(topic) != "" {
			m.url.SetValue("")
			m.text.SetValue("")
		}
		m.sess.SetSearchTopic(topic)
	case focusURL, focusText:
		url, text := strings.TrimSpace(m.url.Value()), m.text.Value()
		if url != "" || strings.TrimSpace(text) != "" {
			m.topic.SetValue("")
		}
		if url != "" {
			m.sess.SetURL(url, text)
			return
		}
		m.sess.SetURL("", "")
		m.sess.SetFreeText(text)
	}
}
