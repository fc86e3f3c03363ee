package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/tOgg1/tchat/internal/app"
	"github.com/tOgg1/tchat/internal/mode"
	"github.com/tOgg1/tchat/internal/textbuf"
)

const (
	inputHeight       = 3
	statusHeight      = 1
	minMessagesHeight = 3
	minMainWidth      = 20
	maxSidebarWidth   = 28
	minSidebarWidth   = 12
)

var (
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	highlightStyle = lipgloss.NewStyle().Reverse(true)
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	statusErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	inputBorder    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	activeBorder   = inputBorder.Copy().BorderForeground(lipgloss.Color("75"))
	sidebarStyle   = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("238"))

	modeStyles = map[mode.Kind]lipgloss.Style{
		mode.KindNormal:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("111")),
		mode.KindInsert:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("150")),
		mode.KindSelectChannel:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("180")),
		mode.KindScrollMessages: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("183")),
	}

	modeHints = map[mode.Kind]string{
		mode.KindNormal:         "i insert  C channels  S scroll  /quit exits",
		mode.KindInsert:         "enter send  esc normal",
		mode.KindSelectChannel:  "up/down move  enter open  esc clear",
		mode.KindScrollMessages: "up older  down newer  d redact  esc back",
	}
)

// layout is the screen split for one terminal size.
type layout struct {
	width, height  int
	sidebarWidth   int
	mainWidth      int
	messagesHeight int
}

func computeLayout(width, height int) layout {
	l := layout{width: width, height: height}

	l.sidebarWidth = width / 4
	if l.sidebarWidth > maxSidebarWidth {
		l.sidebarWidth = maxSidebarWidth
	}
	if l.sidebarWidth < minSidebarWidth || width-l.sidebarWidth < minMainWidth {
		l.sidebarWidth = 0
	}
	l.mainWidth = width - l.sidebarWidth

	l.messagesHeight = height - inputHeight - statusHeight
	if l.messagesHeight < minMessagesHeight {
		l.messagesHeight = minMessagesHeight
	}
	return l
}

// inputColumns is the width the cursor math wraps against: the input box is
// drawn one column wider than that so a cursor resting on a wrap boundary
// has a cell to occupy.
func (l layout) inputColumns() int {
	return l.mainWidth - 1
}

type renderOptions struct {
	showTimestamps bool
}

func render(vm app.ViewModel, l layout, opts renderOptions, colors *senderColors) string {
	if l.width <= 0 || l.height <= 0 {
		return ""
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		renderMessages(vm, l.mainWidth, l.messagesHeight, opts, colors),
		renderInput(vm, l.inputColumns()),
	)
	body := main
	if l.sidebarWidth > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			renderSidebar(vm, l.sidebarWidth, l.messagesHeight+inputHeight),
			main,
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, renderStatus(vm, l.width))
}

func renderSidebar(vm app.ViewModel, width, height int) string {
	inner := width - 1
	lines := []string{titleStyle.Render(truncate("Channels", inner))}
	for _, ch := range vm.Channels {
		marker := "  "
		if ch.Current {
			marker = "* "
		}
		line := marker + truncate(ch.Name, inner-2)
		if ch.Highlighted {
			line = highlightStyle.Render(padRight(line, inner))
		}
		lines = append(lines, line)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return sidebarStyle.Copy().Width(inner).Height(height).Render(strings.Join(lines, "\n"))
}

func renderMessages(vm app.ViewModel, width, height int, opts renderOptions, colors *senderColors) string {
	header := "No channel selected. Press C to pick one."
	if vm.CurrentChannel != "" {
		header = vm.CurrentName
		switch {
		case vm.Loading:
			header += mutedStyle.Render("  loading history...")
		case vm.AtTop:
			header += mutedStyle.Render("  start of history")
		}
	}
	lines := []string{titleStyle.Render(truncate(header, width))}

	bodyHeight := height - 1
	var (
		body           []string
		hlStart, hlEnd = -1, -1
	)
	for _, m := range vm.Messages {
		block := messageLines(m, width, opts, colors)
		if m.Highlighted {
			hlStart, hlEnd = len(body), len(body)+len(block)
		}
		body = append(body, block...)
	}
	lines = append(lines, window(body, bodyHeight, vm.NewestFirst, hlStart, hlEnd)...)

	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

func messageLines(m app.MessageItem, width int, opts renderOptions, colors *senderColors) []string {
	var prefix string
	if opts.showTimestamps && m.Timestamp > 0 {
		prefix = time.UnixMilli(m.Timestamp).Format("15:04") + " "
	}
	text := m.Body
	if m.Edited {
		text += " (edited)"
	}

	if m.Highlighted {
		wrapped := wrapText(prefix+m.Sender+": "+text, width)
		for i, line := range wrapped {
			wrapped[i] = highlightStyle.Render(padRight(line, width))
		}
		return wrapped
	}
	styled := mutedStyle.Render(prefix) + colors.style(m.Sender).Render(m.Sender) + ": " + text
	return wrapText(styled, width)
}

// window picks height lines out of lines, anchored at the newest end and
// moved just enough to keep [hlStart, hlEnd) visible.
func window(lines []string, height int, newestFirst bool, hlStart, hlEnd int) []string {
	if height <= 0 {
		return nil
	}
	if len(lines) <= height {
		return lines
	}

	var start int
	if newestFirst {
		start = 0
		if hlEnd > height {
			start = hlEnd - height
		}
	} else {
		start = len(lines) - height
		if hlStart >= 0 && hlStart < start {
			start = hlStart
		}
	}
	return lines[start : start+height]
}

func renderInput(vm app.ViewModel, columns int) string {
	w := textbuf.InnerWidth(columns)
	runes := []rune(vm.Input)

	start := vm.CursorRow * w
	if start > len(runes) {
		start = len(runes)
	}
	end := start + w
	if end > len(runes) {
		end = len(runes)
	}

	at := start + vm.CursorCol
	cursor := " "
	if at < len(runes) {
		cursor = string(runes[at])
	}
	before := string(runes[start:minInt(at, end)])
	after := ""
	if at+1 < end {
		after = string(runes[at+1 : end])
	}

	content := before + cursorStyle.Render(cursor) + after
	style := inputBorder
	if vm.Mode == mode.KindInsert {
		style = activeBorder
	}
	return style.Copy().Width(w + 1).Render(content)
}

func renderStatus(vm app.ViewModel, width int) string {
	label := modeStyles[vm.Mode].Render(" " + vm.ModeLabel + " ")
	rest := width - lipgloss.Width(label) - 1
	if rest <= 0 {
		return label
	}
	if vm.Status != "" {
		return label + " " + statusErrStyle.Render(truncate(vm.Status, rest))
	}
	return label + " " + mutedStyle.Render(truncate(modeHints[vm.Mode], rest))
}

func wrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	return strings.Split(wrap.String(wordwrap.String(s, width), width), "\n")
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
