package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"neuropath/internal/types"
)

const (
	minWidth   = 60
	chatRatio  = 0.38
	inputsRows = 14
)

func (m *Model) resize(width, height int) {
	m.width, m.height = max(width, minWidth), max(height, 20)
	leftW, chatW := m.columnWidths()

	m.topic.Width = leftW - 4
	m.url.Width = leftW - 4
	m.attachPath.Width = leftW - 4
	m.text.SetWidth(leftW - 4)
	m.chatInput.Width = chatW - 6

	bodyH := m.height - inputsRows - 6
	m.result.Width = leftW - 4
	m.result.Height = max(bodyH, 4)
	m.chat.Width = chatW - 4
	m.chat.Height = max(m.height-10, 4)
	m.help.Width = m.width

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(m.result.Width-2),
	)
	if err != nil {
		m.log.Warn("glamour init failed", "error", err)
		r = nil
	}
	m.renderer = r
	m.renderResult()
	m.refreshChat()
}

func (m *Model) columnWidths() (left, chat int) {
	chat = int(float64(m.width) * chatRatio)
	return m.width - chat, chat
}

// renderResult renders the adapted text as markdown with its sources below.
func (m *Model) renderResult() {
	res, ok := m.sess.Result()
	if !ok {
		m.rendered = ""
		m.result.SetContent(mutedStyle.Render("Your adapted content will appear here."))
		return
	}
	body := res.Text
	if m.renderer != nil {
		if out, err := m.renderer.Render(res.Text); err == nil {
			body = out
		}
	}
	if len(res.Sources) > 0 {
		body += "\n" + labelStyle.Render("Sources") + "\n" + sourcesList(res.Sources, m.result.Width)
	}
	m.rendered = body
	m.result.SetContent(body)
	m.result.GotoTop()
}

func sourcesList(sources []types.GroundingSource, width int) string {
	var sb strings.Builder
	for i, src := range sources {
		line := fmt.Sprintf("%d. %s", i+1, src.Title)
		sb.WriteString(runewidth.Truncate(line, max(width-2, 10), "…"))
		sb.WriteString("\n   ")
		sb.WriteString(mutedStyle.Render(runewidth.Truncate(src.URI, max(width-5, 10), "…")))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Model) refreshChat() { m.refreshChatWith() }

func (m *Model) refreshChatWith(pending ...types.ChatMessage) {
	msgs := append(m.sess.Transcript(), pending...)
	width := max(m.chat.Width-2, 10)
	var sb strings.Builder
	for _, msg := range msgs {
		text := lipgloss.NewStyle().Width(width).Render(msg.Text)
		if msg.Role == types.RoleUser {
			sb.WriteString(userMsgStyle.Render("You") + "\n" + text + "\n\n")
		} else {
			sb.WriteString(botMsgStyle.Render("Ally") + "\n" + text + "\n\n")
		}
	}
	m.chat.SetContent(sb.String())
	m.chat.GotoBottom()
}

func (m *Model) View() string {
	header := m.headerView()
	leftW, chatW := m.columnWidths()

	left := lipgloss.JoinVertical(lipgloss.Left,
		paneStyle.Width(leftW-2).Render(m.inputsView()),
		paneStyle.Width(leftW-2).Render(m.resultView()),
	)
	right := paneStyle.Width(chatW-2).Render(m.chatView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	if m.exportOpen {
		body = lipgloss.Place(m.width, lipgloss.Height(body), lipgloss.Center, lipgloss.Center, m.exportMenuView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.footerView())
}

func (m *Model) headerView() string {
	selected := m.sess.Profile()
	tabs := make([]string, 0, len(types.Profiles))
	for _, p := range types.Profiles {
		d := p.Details()
		if p == selected {
			tabs = append(tabs, profileSelectedStyle.Render(d.Name))
		} else {
			tabs = append(tabs, profileStyle.Render(d.Name))
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render("NeuroPath"), " ", strings.Join(tabs, " "))
	return line + "\n" + mutedStyle.Render(selected.Details().Description)
}

func (m *Model) label(f focusArea, text string) string {
	if m.focus == f {
		return labelFocusedStyle.Render("▸ " + text)
	}
	return labelStyle.Render("  " + text)
}

func (m *Model) inputsView() string {
	attachment := mutedStyle.Render("no file attached")
	if att := m.sess.Attachment(); att != nil {
		attachment = fmt.Sprintf("📎 %s (%s, %d bytes)", att.Name, att.MIMEType, len(att.Data))
	}
	return strings.Join([]string{
		m.label(focusTopic, "Search a topic"), m.topic.View(),
		m.label(focusURL, "URL"), m.url.View(),
		m.label(focusText, "Text"), m.text.View(),
		m.label(focusAttachment, "Attach a file"), m.attachPath.View(), attachment,
	}, "\n")
}

func (m *Model) resultView() string {
	status := ""
	switch {
	case m.sess.IsProcessing():
		status = m.spinner.View() + " Adapting..."
	case m.sess.IsSpeaking():
		status = m.spinner.View() + " Reading aloud..."
	case m.sess.CanReadAloud():
		status = mutedStyle.Render("ctrl+r Read Aloud · ctrl+e Export")
	}
	return labelStyle.Render("Adapted content") + "  " + status + "\n" + m.result.View()
}

func (m *Model) chatView() string {
	typing := ""
	if m.sess.IsBotTyping() {
		typing = m.spinner.View() + " Ally is thinking..."
	}
	actions := mutedStyle.Render("f2 Explain simply · f3 Define terms · f4 Check-in · f5 Quiz")
	return strings.Join([]string{
		labelStyle.Render("Cognitive Ally"),
		m.chat.View(),
		typing,
		actions,
		m.label(focusChat, "Message"),
		m.chatInput.View(),
	}, "\n")
}

func (m *Model) exportMenuView() string {
	lines := []string{labelStyle.Render("Export")}
	for _, e := range exportKeys {
		lines = append(lines, fmt.Sprintf("[%s] %s", e.Key, e.Label))
	}
	lines = append(lines, mutedStyle.Render("esc to close"))
	return menuStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) footerView() string {
	footer := m.help.View(m.keys)
	if m.toast != "" {
		style := toastStyle
		if m.toastError {
			style = toastErrorStyle
		}
		footer = style.Render(m.toast) + "  " + footer
	}
	return footer
}
