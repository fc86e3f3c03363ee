package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/tchat/internal/models"
)

func TestBackfillFromFallsBackToSyncPosition(t *testing.T) {
	c := NewChannel("!room", "")
	require.Equal(t, "", c.BackfillFrom())

	c.SetSyncPosition("s42")
	require.Equal(t, "s42", c.BackfillFrom())

	c.ApplyPage(models.Page{End: "b17"})
	require.Equal(t, "b17", c.BackfillFrom())
	require.False(t, c.AtTop())
}

func TestApplyPageInsertsOlderHistory(t *testing.T) {
	c := NewChannel("!room", "")
	c.ApplyMessage(msg("live", 50))

	changes := c.ApplyPage(models.Page{
		End: "b1",
		Events: []models.Event{
			{Kind: models.EventMessage, Room: "!room", ID: "h3", Timestamp: 30},
			{Kind: models.EventEdit, Room: "!room", ID: "e1", Target: "h1", Body: "edited h1", Timestamp: 25},
			{Kind: models.EventMessage, Room: "!room", ID: "h2", Timestamp: 20},
			{Kind: models.EventMessage, Room: "!room", ID: "h1", Timestamp: 10},
			{Kind: models.EventMessage, Room: "!room", ID: "live", Timestamp: 50},
		},
	})
	require.Len(t, changes, 5)
	require.Equal(t, []string{"h1", "h2", "h3", "live"}, c.Order())

	h1, _ := c.Message("h1")
	require.Equal(t, "edited h1", h1.Body)
	require.True(t, h1.Edited)
	require.False(t, changes[4].Applied, "duplicate from history must not re-insert")
}

func TestApplyPageRedactionsRunLast(t *testing.T) {
	c := NewChannel("!room", "")
	c.ApplyPage(models.Page{
		End: "b1",
		Events: []models.Event{
			{Kind: models.EventRedaction, Room: "!room", Target: "h1", Timestamp: 40},
			{Kind: models.EventMessage, Room: "!room", ID: "h2", Timestamp: 20},
			{Kind: models.EventMessage, Room: "!room", ID: "h1", Timestamp: 10},
		},
	})
	require.Equal(t, []string{"h2"}, c.Order())
}

func TestEmptyPageWithoutTokenReachesTop(t *testing.T) {
	c := NewChannel("!room", "")
	c.SetSyncPosition("s1")
	require.True(t, c.CanBackfill())

	changes := c.ApplyPage(models.Page{})
	require.Empty(t, changes)
	require.True(t, c.AtTop())
	require.False(t, c.CanBackfill())
	require.Equal(t, "s1", c.BackfillFrom())
}

func TestTimelineEnsureAndLazyCreate(t *testing.T) {
	tl := New()
	tl.Ensure("!a", "alpha")

	_, created := tl.Apply(models.Event{Kind: models.EventMessage, Room: "!b", ID: "m1", Timestamp: 1})
	require.True(t, created)
	require.Equal(t, []string{"!a", "!b"}, tl.IDs())

	ch, ok := tl.Channel("!b")
	require.True(t, ok)
	require.Equal(t, "!b", ch.DisplayName())

	_, created = tl.Ensure("!b", "bravo")
	require.False(t, created)
	require.Equal(t, "bravo", ch.DisplayName())
	require.Equal(t, 1, ch.Len())
}
