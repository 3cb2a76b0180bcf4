// Package router swaps the active page screen as GotoMsg values arrive.
package router

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizo/internal/quiz"
	"github.com/abhisek/quizo/internal/screen"
)

// Factory builds a fresh screen for a page.
type Factory func(quiz.Page) screen.Screen

// Router owns the screen of the current page. Moving to a page always
// builds a new screen, so guards and loads run again on every visit.
type Router struct {
	build  Factory
	logger *slog.Logger

	page   quiz.Page
	active screen.Screen
	visits int
}

// New creates a Router showing start. The screen's Init runs from Init.
func New(build Factory, start quiz.Page, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{build: build, logger: logger, page: start, active: build(start), visits: 1}
}

// Init runs the Init of the current screen.
func (r *Router) Init() tea.Cmd {
	return r.active.Init()
}

// Goto replaces the current screen with a new one for page.
func (r *Router) Goto(page quiz.Page) tea.Cmd {
	r.page = page
	r.active = r.build(page)
	r.visits++
	return r.active.Init()
}

// Page returns the page being shown.
func (r *Router) Page() quiz.Page { return r.page }

// Active returns the current screen.
func (r *Router) Active() screen.Screen { return r.active }

// Visits counts page screens built so far, the first one included.
func (r *Router) Visits() int { return r.visits }

// Update handles GotoMsg and forwards everything else to the current screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if g, ok := msg.(screen.GotoMsg); ok {
		log := r.logger.With("from", r.page.String(), "to", g.Page.String())
		if g.Reason != nil {
			log.Info("redirect", "reason", g.Reason)
		} else {
			log.Debug("navigate")
		}
		return r.Goto(g.Page)
	}

	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the current screen.
func (r *Router) View(width, height int) string {
	return r.active.View(width, height)
}
