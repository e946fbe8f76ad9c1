package journal

import "regexp"

// Raw is a journal record as captured from the page or read back from
// storage or an export, with possibly missing fields. Its JSON shape
// matches Entry.
type Raw struct {
	ID       int64    `json:"id"`
	Date     string   `json:"date"`
	Location string   `json:"location"`
	Text     string   `json:"text"`
	Types    []string `json:"type"`
	Mouse    string   `json:"mouse"`
	Image    string   `json:"image"`
}

// mouseViewRegex matches the mouse view link the game embeds in catch
// entry markup, e.g. hg.views.MouseView.show('giant_white_mouse').
var mouseViewRegex = regexp.MustCompile(`hg\.views\.MouseView\.show\('([^']+)'\)`)

// catchTypes are the entry tags that indicate a successful catch. Only
// these entries carry a mouse view link worth extracting.
var catchTypes = map[string]struct{}{
	"catchsuccess":      {},
	"catchsuccessloot":  {},
	"bonuscatchsuccess": {},
	"luckycatchsuccess": {},
}

// Normalize turns a raw record into a canonical Entry. Missing fields
// degrade to defaults rather than failing: id 0, the unknown-date
// sentinel, empty strings, and an empty tag list. When the entry is a
// catch and no mouse is set, the mouse identifier is extracted from the
// body markup on a best-effort basis.
func Normalize(r Raw) Entry {
	e := Entry{
		ID:       r.ID,
		Date:     r.Date,
		Location: r.Location,
		Text:     r.Text,
		Types:    r.Types,
		Mouse:    r.Mouse,
		Image:    r.Image,
	}

	if e.Date == "" {
		e.Date = UnknownDate
	}
	if e.Types == nil {
		e.Types = []string{}
	}

	if e.Mouse == "" && isCatch(e.Types) {
		e.Mouse = ExtractMouse(e.Text)
	}

	return e
}

// ExtractMouse pulls the mouse identifier out of entry body markup.
// Returns "" when no mouse view link is present.
func ExtractMouse(text string) string {
	match := mouseViewRegex.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}

func isCatch(types []string) bool {
	for _, t := range types {
		if _, ok := catchTypes[t]; ok {
			return true
		}
	}
	return false
}
