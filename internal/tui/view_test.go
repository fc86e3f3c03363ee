package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/tchat/internal/app"
	"github.com/tOgg1/tchat/internal/mode"
	"github.com/tOgg1/tchat/internal/textbuf"
)

func TestComputeLayout(t *testing.T) {
	l := computeLayout(100, 30)
	require.Equal(t, 25, l.sidebarWidth)
	require.Equal(t, 75, l.mainWidth)
	require.Equal(t, 26, l.messagesHeight)
	require.Equal(t, 74, l.inputColumns())

	narrow := computeLayout(30, 5)
	require.Equal(t, 0, narrow.sidebarWidth)
	require.Equal(t, 30, narrow.mainWidth)
	require.Equal(t, minMessagesHeight, narrow.messagesHeight)
}

func TestRenderInputFitsBox(t *testing.T) {
	columns := 12
	w := textbuf.InnerWidth(columns)
	text := "0123456789"
	col, row := textbuf.CursorCell(len(text), w)

	out := renderInput(app.ViewModel{Input: text, CursorCol: col, CursorRow: row, Mode: mode.KindInsert}, columns)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, inputHeight)
	require.Contains(t, lines[1], text)
	require.Equal(t, columns+1, lipgloss.Width(lines[1]))
}

func TestRenderInputShowsCursorRow(t *testing.T) {
	columns := 7 // wrap width 5
	text := "abcdefgh"
	col, row := textbuf.CursorCell(6, textbuf.InnerWidth(columns))
	require.Equal(t, 1, col)
	require.Equal(t, 1, row)

	out := renderInput(app.ViewModel{Input: text, CursorCol: col, CursorRow: row}, columns)
	require.Contains(t, out, "f")
	require.Contains(t, out, "h")
	require.NotContains(t, out, "abc")
}

func TestWindowKeepsHighlightVisible(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4", "5"}

	require.Equal(t, []string{"3", "4", "5"}, window(lines, 3, false, -1, -1))
	require.Equal(t, []string{"1", "2", "3"}, window(lines, 3, false, 1, 2))
	require.Equal(t, []string{"0", "1", "2"}, window(lines, 3, true, -1, -1))
	require.Equal(t, []string{"3", "4", "5"}, window(lines, 3, true, 5, 6))
	require.Equal(t, lines[:2], window(lines[:2], 3, false, -1, -1))
	require.Nil(t, window(lines, 0, false, -1, -1))
}

func TestRenderMessagesHeaderStates(t *testing.T) {
	colors := newSenderColors()
	vm := app.ViewModel{}
	out := renderMessages(vm, 60, 5, renderOptions{}, colors)
	require.Contains(t, out, "No channel selected")

	vm = app.ViewModel{CurrentChannel: "!a", CurrentName: "alpha", AtTop: true}
	out = renderMessages(vm, 60, 5, renderOptions{}, colors)
	require.Contains(t, out, "alpha")
	require.Contains(t, out, "start of history")

	vm.Loading = true
	out = renderMessages(vm, 60, 5, renderOptions{}, colors)
	require.Contains(t, out, "loading history")
}

func TestMessageLinesWrapAndMarkEdits(t *testing.T) {
	colors := newSenderColors()
	m := app.MessageItem{Sender: "bob", Body: strings.Repeat("word ", 10), Edited: true}
	lines := messageLines(m, 20, renderOptions{}, colors)
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		require.LessOrEqual(t, lipgloss.Width(line), 20)
	}
	require.Contains(t, strings.Join(lines, " "), "(edited)")
}

func TestRenderStatusPrefersFailure(t *testing.T) {
	vm := app.ViewModel{Mode: mode.KindNormal, ModeLabel: "NORMAL"}
	require.Contains(t, renderStatus(vm, 80), "i insert")

	vm.Status = "send to !a failed: offline"
	out := renderStatus(vm, 80)
	require.Contains(t, out, "offline")
	require.NotContains(t, out, "i insert")
}

func TestSenderColorsAreStable(t *testing.T) {
	colors := newSenderColors()
	require.Equal(t, colors.style("Bob").Render("x"), colors.style(" bob ").Render("x"))
	require.Equal(t, paletteIndex("bob", len(senderPalette)), paletteIndex("bob", len(senderPalette)))
}
