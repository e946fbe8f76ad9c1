// Package capture persists journal entries as the live feed displays them.
package capture

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rs/zerolog"

	"github.com/JK0987/mousehunt-improved/internal/db"
	"github.com/JK0987/mousehunt-improved/internal/errors"
	"github.com/JK0987/mousehunt-improved/internal/history"
	"github.com/JK0987/mousehunt-improved/internal/journal"
)

// Sink writes each newly displayed journal entry into the store, applying
// the no-downgrade merge policy. One sink serves one page-load session.
type Sink struct {
	db        *sql.DB
	namespace string
	cache     *history.Cache
	session   *history.Session
	log       zerolog.Logger
}

// NewSink creates a sink over the given store namespace. The cache is
// optional; when present, captured entries are appended eagerly so the
// same session sees them without a reload.
func NewSink(database *sql.DB, namespace string, cache *history.Cache, session *history.Session, log zerolog.Logger) *Sink {
	return &Sink{
		db:        database,
		namespace: namespace,
		cache:     cache,
		session:   session,
		log:       log.With().Str("component", "capture").Str("session", session.ID()).Logger(),
	}
}

// Run drains a feed of rendered entry fragments in delivery order, each
// handled to completion before the next. Failures are logged and dropped;
// a displayed entry cannot be replayed, so there is nothing to retry.
func (s *Sink) Run(ctx context.Context, feed <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case markup, ok := <-feed:
			if !ok {
				return
			}
			if err := s.Observe(ctx, markup); err != nil {
				s.log.Warn().Err(err).Msg("dropping journal entry capture")
			}
		}
	}
}

// Observe captures one rendered entry fragment. Fragments that are not
// journal entries, carry no usable id, or duplicate an already detailed
// record are skipped silently. Only storage failures return an error.
func (s *Sink) Observe(ctx context.Context, markup string) error {
	frag := ParseFragment(markup)
	if frag == nil {
		return nil
	}

	// Entries without a body are decorations (day separators, pinned
	// banners); nothing worth keeping.
	if !frag.HasText {
		return nil
	}

	existing, err := db.Get(ctx, s.db, s.namespace, frag.ID)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return err
	}
	if existing != nil && existing.Detailed() {
		return nil
	}

	date, location := s.resolveDateLine(frag.DateLine)

	entry := journal.Normalize(journal.Raw{
		ID:       frag.ID,
		Date:     date,
		Location: location,
		Text:     frag.Text,
		Types:    frag.Classes,
		Mouse:    frag.Mouse,
		Image:    frag.Image,
	})

	applied, err := db.Upsert(ctx, s.db, s.namespace, entry)
	if err != nil {
		return err
	}

	if applied && s.cache != nil {
		s.cache.Append(entry)
	}

	s.log.Debug().Int64("id", entry.ID).Str("location", entry.Location).Msg("captured journal entry")
	return nil
}

// resolveDateLine splits the "date - location" display line. Entries in a
// visual group omit the repeated line, so an empty one falls back to the
// last line observed this session.
func (s *Sink) resolveDateLine(line string) (date, location string) {
	if line == "" {
		line = s.session.LastDate()
	}
	s.session.RememberDate(line)

	date = journal.UnknownDate
	location = journal.UnknownLocation

	parts := strings.SplitN(line, "-", 2)
	if p := strings.TrimSpace(parts[0]); p != "" {
		date = p
	}
	if len(parts) > 1 {
		if p := strings.TrimSpace(parts[1]); p != "" {
			location = p
		}
	}

	return date, location
}
