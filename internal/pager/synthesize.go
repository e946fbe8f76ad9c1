package pager

import (
	"fmt"
	"strings"

	"github.com/JK0987/mousehunt-improved/internal/history"
	"github.com/JK0987/mousehunt-improved/internal/journal"
	"github.com/JK0987/mousehunt-improved/internal/thumbs"
)

// Synthesizer renders pages of cached history into the same markup shape
// the game produces, so the capture sink's later scrape of a synthesized
// entry sees a detailed record and writes nothing new.
type Synthesizer struct {
	cache    *history.Cache
	thumbs   thumbs.Table
	pageSize int
}

// NewSynthesizer creates a synthesizer over the cache with a fixed page size.
func NewSynthesizer(cache *history.Cache, table thumbs.Table, pageSize int) *Synthesizer {
	return &Synthesizer{
		cache:    cache,
		thumbs:   table,
		pageSize: pageSize,
	}
}

// RenderPage renders the 1-based page into a markup batch, or "" when the
// page is beyond known history. A batch wraps its entries so previously
// rendered pages are never disturbed; the host pager appends cumulatively.
func (s *Synthesizer) RenderPage(page int) string {
	entries := s.cache.Slice(page, s.pageSize)
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="journal-history-entries">`)
	for _, e := range entries {
		b.WriteString(s.renderEntry(e))
	}
	b.WriteString(`</div>`)

	return b.String()
}

// renderEntry mirrors the game's own entry markup: type classes on the
// wrapper, the entry id and mouse as data attributes, optional thumbnail
// block, then the date-location line and body.
func (s *Synthesizer) renderEntry(e journal.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<div class="%s" data-entry-id="%d" data-mouse-type="%s">`,
		strings.Join(e.Types, " "), e.ID, e.Mouse)

	if e.Mouse != "" {
		if thumb, ok := s.thumbs.Lookup(e.Mouse); ok {
			fmt.Fprintf(&b, `<div class="journalimage"><a onclick="hg.views.MouseView.show('%s'); return false;"><img src="%s" border="0"></a></div>`,
				e.Mouse, thumb)
		}
	}

	if e.Image != "" {
		fmt.Fprintf(&b, `<div class="journalimage">%s</div>`, e.Image)
	}

	fmt.Fprintf(&b, `<div class="journalbody"><div class="journalactions"></div><div class="journaldate">%s - %s</div><div class="journaltext">%s</div></div></div>`,
		e.Date, e.Location, e.Text)

	return b.String()
}
