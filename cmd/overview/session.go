package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	overviewclient "github.com/barbatoslupus21/unisync-overview/internal/client/overview"
	"github.com/barbatoslupus21/unisync-overview/internal/grid"
	"github.com/barbatoslupus21/unisync-overview/internal/localcache"
	"github.com/barbatoslupus21/unisync-overview/internal/persist"
	"github.com/barbatoslupus21/unisync-overview/internal/render"
	"github.com/barbatoslupus21/unisync-overview/pkg/logger"
)

// session is one dashboard page lifetime: a controller over the loaded
// layout, its persister and the cache it writes to.
type session struct {
	log       *slog.Logger
	client    *overviewclient.Client
	roles     grid.RoleSet
	persister *persist.Persister
	ctrl      *grid.Controller
	view      *latestView
	source    string
	closers   []func() error
}

// latestView keeps only the last frame; the CLI prints it once at the end.
type latestView struct {
	term  *render.Terminal
	frame *grid.Frame
}

func (v *latestView) Render(f grid.Frame) { v.frame = &f }

func (v *latestView) ShowPreview(p *grid.Preview) { v.term.ShowPreview(p) }

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "unisync-overview", "layout.db")
}

// newSession wires the collaborators. A collaborator that cannot be set up
// is logged and left out.
func newSession(ctx context.Context, opts *rootOptions, stdout, stderr io.Writer) *session {
	s := &session{log: logger.New(opts.LogLevel, logger.NewCLIHandler)}
	ctx = logger.ToContext(ctx, s.log)

	var remote persist.Remote
	var content render.Source
	if !opts.Offline && opts.APIURL != "" {
		client, err := overviewclient.New(overviewclient.Config{
			BaseURL: opts.APIURL,
			Token:   opts.Token,
			Timeout: opts.Timeout,
		})
		if err != nil {
			s.log.Warn("remote layout store unavailable", "error", err)
		} else {
			s.client, remote, content = client, client, client
		}
	}

	asserted := opts.Roles
	if s.client != nil {
		if roles, err := s.client.Roles(ctx); err != nil {
			s.log.Warn("failed to fetch roles", "error", err)
		} else {
			asserted = roles
		}
	}
	s.roles = grid.ResolveRoles(grid.Kinds(), asserted)

	path := opts.CachePath
	if path == "" {
		path = defaultCachePath()
	}
	var kv persist.KV
	if db, err := localcache.Open(path); err != nil {
		s.log.Warn("local cache unavailable, using memory", "path", path, "error", err)
		kv = localcache.NewMemory()
	} else {
		kv = db
		s.closers = append(s.closers, db.Close)
	}

	roles := s.roles
	s.persister = persist.New(persist.Config{
		Remote:   remote,
		Local:    persist.NewLocalStore(kv),
		Notifier: render.NewToaster(stderr),
		Defaults: func() grid.Layout { return grid.DefaultLayout(roles, nil) },
		Log:      s.log,
	})

	s.view = &latestView{term: render.NewTerminal(stdout)}
	s.ctrl = grid.NewController(grid.Config{
		Registry:      render.NewRegistry(content),
		View:          s.view,
		Saver:         s.persister,
		Log:           s.log,
		ViewportWidth: opts.Width,
	})
	return s
}

// load resolves the layout and hands it to the controller.
func (s *session) load(ctx context.Context) error {
	layout, source, err := s.persister.Load(ctx)
	if layout == nil && err != nil {
		return err
	}
	if err != nil {
		s.log.Warn("default layout not saved", "error", err)
	}
	s.source = source
	s.ctrl.SetLayout(ctx, layout)
	return nil
}

// close waits for background pushes, then prints the last frame.
func (s *session) close() {
	s.persister.Wait()
	s.ctrl.Close()
	if s.view.frame != nil {
		s.view.term.Render(*s.view.frame)
	}
	for _, c := range s.closers {
		if err := c(); err != nil {
			s.log.Warn("close failed", "error", err)
		}
	}
}
