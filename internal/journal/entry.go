// Package journal defines the canonical journal entry model and the
// normalization rules that turn partially captured records into it.
package journal

// DefaultNamespace is the storage namespace for journal entries.
const DefaultNamespace = "journal"

// Sentinels used when a captured entry omits a field.
const (
	UnknownDate     = "0:00"
	UnknownLocation = "Unknown"
)

// Entry is one canonical journal record. ID is assigned by the game and is
// the primary key of the store.
type Entry struct {
	ID int64 `json:"id"`

	// Date is the timestamp label as displayed by the UI. It is display
	// text ("3:45pm"), not a parseable absolute timestamp.
	Date string `json:"date"`

	// Location is the in-game location label associated with the event.
	Location string `json:"location"`

	// Text is the raw display markup of the entry body. A non-empty Text
	// marks the record as fully captured.
	Text string `json:"text"`

	// Types are the classification tags of the entry. Never nil: they
	// drive class-based rendering and the mouse-extraction heuristic.
	Types []string `json:"type"`

	// Mouse is the identifier of the caught mouse, when the entry is a
	// catch and one could be determined.
	Mouse string `json:"mouse,omitempty"`

	// Image is the markup of an associated thumbnail, if any.
	Image string `json:"image,omitempty"`
}

// Detailed reports whether the entry has been fully captured. Records with
// empty text are placeholders and may still be upgraded.
func (e Entry) Detailed() bool {
	return e.Text != ""
}
