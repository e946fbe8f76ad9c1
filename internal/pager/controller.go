// Package pager decides, per navigation event, whether the remote journal
// query or the local archive serves a requested page.
package pager

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/JK0987/mousehunt-improved/internal/history"
)

// Paginator is the host UI's paging widget.
type Paginator interface {
	SetTotalItems(n int)
	Enable()
	Render()
	CurrentPage() int
}

// Remote issues the native journal page request. Its request and response
// shapes are its own business; the controller only needs to know when not
// to invoke it.
type Remote interface {
	RequestPage(ctx context.Context, page int) error
}

// Container receives rendered markup batches.
type Container interface {
	AppendMarkup(markup string)
}

// Controller mediates between the native remote pager and the synthesized
// path. Pages up to the native limit flow through the remote unmodified;
// anything past it is served from the cache.
type Controller struct {
	db          *sql.DB
	namespace   string
	cache       *history.Cache
	synth       *Synthesizer
	paginator   Paginator
	remote      Remote
	container   Container
	nativeLimit int
	log         zerolog.Logger
}

// NewController wires the controller to its collaborators.
func NewController(database *sql.DB, namespace string, cache *history.Cache, synth *Synthesizer,
	paginator Paginator, remote Remote, container Container, nativeLimit int, log zerolog.Logger) *Controller {
	return &Controller{
		db:          database,
		namespace:   namespace,
		cache:       cache,
		synth:       synth,
		paginator:   paginator,
		remote:      remote,
		container:   container,
		nativeLimit: nativeLimit,
		log:         log.With().Str("component", "pager").Logger(),
	}
}

// Init lazily loads the cache and points the paginator at the full known
// history, so "last page" reflects everything captured, not just the
// remote window.
func (c *Controller) Init(ctx context.Context) error {
	if err := c.cache.Load(ctx, c.db, c.namespace); err != nil {
		return err
	}

	c.paginator.SetTotalItems(c.cache.Len())
	c.paginator.Enable()
	c.paginator.Render()

	return nil
}

// HandleNavigation serves one page-change request. Remote failures on the
// native path are logged and dropped; the enhancement layer never breaks
// the host page.
func (c *Controller) HandleNavigation(ctx context.Context, page int) {
	// Counts may have grown since Init if entries were captured this
	// session.
	c.paginator.SetTotalItems(c.cache.Len())

	if page <= c.nativeLimit {
		if c.remote != nil {
			if err := c.remote.RequestPage(ctx, page); err != nil {
				c.log.Warn().Err(err).Int("page", page).Msg("native journal request failed")
			}
		}
		return
	}

	markup := c.synth.RenderPage(page)
	if markup == "" {
		return
	}

	c.container.AppendMarkup(markup)
	c.log.Debug().Int("page", page).Msg("synthesized journal page")
}

// HandleRequest re-runs Init bookkeeping and serves the paginator's
// current page when it is past the native range. This is the hook for the
// host's journal request event.
func (c *Controller) HandleRequest(ctx context.Context) {
	if err := c.Init(ctx); err != nil {
		c.log.Warn().Err(err).Msg("journal history init failed")
		return
	}

	if page := c.paginator.CurrentPage(); page > c.nativeLimit {
		c.HandleNavigation(ctx, page)
	}
}
