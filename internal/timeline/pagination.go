package timeline

import "github.com/tOgg1/tchat/internal/models"

// AtTop reports whether backward pagination has reached the head of history.
func (c *Channel) AtTop() bool { return c.atTop }

// PrevToken returns the continuation token for the next backward fetch.
func (c *Channel) PrevToken() string { return c.prevToken }

// SetSyncPosition records the stream position the channel was last synced
// at. It seeds the first backward fetch.
func (c *Channel) SetSyncPosition(pos string) { c.syncPosition = pos }

// SyncPosition returns the last recorded stream position.
func (c *Channel) SyncPosition() string { return c.syncPosition }

// CanBackfill reports whether another backward fetch may return data.
func (c *Channel) CanBackfill() bool { return !c.atTop }

// BackfillFrom returns the token to fetch the next older page from: the
// stored continuation token, or the sync position before any page arrived.
func (c *Channel) BackfillFrom() string {
	if c.prevToken != "" {
		return c.prevToken
	}
	return c.syncPosition
}

// ApplyPage records the page's continuation token and applies its events in
// the order the page lists them, through the same paths as live events.
// A page without a continuation token marks the channel as at the top.
//
// Pages run newest first, so a redaction is listed before the message it
// removes; redactions are therefore applied after the rest of the page.
func (c *Channel) ApplyPage(page models.Page) []Change {
	c.atTop = page.End == ""
	if page.End != "" {
		c.prevToken = page.End
	}

	changes := make([]Change, 0, len(page.Events))
	var redactions []models.Event
	for _, e := range page.Events {
		if e.Kind == models.EventRedaction {
			redactions = append(redactions, e)
			continue
		}
		changes = append(changes, c.Apply(e))
	}
	for _, e := range redactions {
		changes = append(changes, c.Apply(e))
	}
	return changes
}
