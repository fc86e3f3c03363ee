package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/tchat/internal/client"
)

const fixture = `
users:
  - name: alice
    token: tct_aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa
  - name: bob
    token: tct_bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb
rooms:
  - id: "!general"
    name: general
    members: [alice, bob]
    messages:
      - id: m1
        sender: alice
        body: good morning
        at: 2026-01-02T09:00:00Z
`

type harness struct {
	dir string
	db  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	h := &harness{dir: dir, db: filepath.Join(dir, "chat.db")}
	path := filepath.Join(dir, "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	out, err := h.run(t, "seed", path)
	require.NoError(t, err)
	require.Contains(t, out, "alice")
	require.Contains(t, out, "tct_bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	return h
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--db", h.db}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) as(user string) []string {
	return []string{"--user", user, "--token", "tct_" + strings.Repeat(user[:1], 32)}
}

func TestRoomsAndHistory(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, append(h.as("alice"), "rooms")...)
	require.NoError(t, err)
	require.Contains(t, out, "!general")
	require.Contains(t, out, "general")

	out, err = h.run(t, append(h.as("bob"), "history", "!general")...)
	require.NoError(t, err)
	require.Contains(t, out, "good morning")
	require.Contains(t, out, "alice")
}

func TestSendEditRedactRoundTrip(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, append(h.as("bob"), "send", "!general", "hello", "all")...)
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(id, "$"))

	_, err = h.run(t, append(h.as("bob"), "edit", "!general", id, "hello everyone")...)
	require.NoError(t, err)

	out, err = h.run(t, append(h.as("alice"), "history", "!general")...)
	require.NoError(t, err)
	require.Contains(t, out, "hello everyone (edited)")

	_, err = h.run(t, append(h.as("alice"), "redact", "!general", "m1")...)
	require.NoError(t, err)

	out, err = h.run(t, append(h.as("alice"), "history", "!general", "--limit", "1", "--pages", "5")...)
	require.NoError(t, err)
	require.NotContains(t, out, "good morning")
	require.Contains(t, out, "hello everyone")
}

func TestLoginFailures(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "--user", "alice", "--token", "wrong", "rooms")
	require.ErrorIs(t, err, client.ErrAuthFailed)

	_, err = h.run(t, "rooms")
	require.Error(t, err)
	require.Contains(t, err.Error(), "session.user")
}

func TestChatRequiresTerminal(t *testing.T) {
	if hasTTY() {
		t.Skip("running attached to a terminal")
	}
	h := newHarness(t)
	_, err := h.run(t, h.as("alice")...)
	require.ErrorIs(t, err, ErrNoTerminal)
}

func TestWriteTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, []string{"ID", "NAME"}, [][]string{
		{"!a", "日本"},
		{"!longer", "x"},
	}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, []string{
		"ID       NAME",
		"!a       日本",
		"!longer  x",
	}, lines)
}
