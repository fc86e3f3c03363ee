package models

// Room is a joined channel as reported by the roster.
type Room struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// DisplayName returns Name, falling back to the id.
func (r Room) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Page is one bounded slice of history, fetched backward.
type Page struct {
	// Events are in the order the server returned them (newest first).
	Events []Event

	// End is the token for the next older page; empty at the head of history.
	End string
}
