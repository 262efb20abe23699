// Package crmapp is the placeholder front end of the CRM application.
//
// Render and RenderText write the page; Run serves it until the context
// is canceled. Options for Run, and the Frontend type for callers that
// manage Start and Stop themselves, live in
// github.com/bft-labs/crmapp/pkg/crmapp.
package crmapp

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bft-labs/crmapp/internal/view"
	"github.com/bft-labs/crmapp/pkg/crmapp"
)

// Config is the server configuration accepted by Run.
type Config = crmapp.Config

// Option configures Run.
type Option = crmapp.Option

// BackendURL is the address the page tells users the backend runs at.
const BackendURL = view.BackendURL

// Render writes the page as a complete HTML document.
func Render(w io.Writer) error {
	return view.Render(w)
}

// RenderText writes the page for a terminal.
func RenderText(w io.Writer) error {
	return view.RenderText(w)
}

// Run serves the page until ctx is canceled, then shuts down gracefully.
// If the server fails first, Run returns an error wrapping the cause.
// Event handlers passed through opts still receive every transition.
func Run(ctx context.Context, cfg Config, opts ...Option) error {
	watch := newCrashWatcher()
	opts = append(opts, crmapp.WithEventHandler(watch))

	fe, err := crmapp.New(cfg, opts...)
	if err != nil {
		return err
	}
	if err := fe.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-watch.crashed:
		_ = fe.Stop()
		return fmt.Errorf("crmapp: server crashed: %w", fe.Err())
	}

	return fe.Stop()
}

// crashWatcher closes crashed on the first transition to Crashed.
type crashWatcher struct {
	crashed chan struct{}
	once    sync.Once
}

func newCrashWatcher() *crashWatcher {
	return &crashWatcher{crashed: make(chan struct{})}
}

func (c *crashWatcher) OnStateChange(event crmapp.StateChangeEvent) {
	if event.Current == crmapp.StateCrashed {
		c.once.Do(func() { close(c.crashed) })
	}
}
