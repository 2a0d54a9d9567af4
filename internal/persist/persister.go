package persist

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/barbatoslupus21/unisync-overview/internal/grid"
)

// Source names reported by Load.
const (
	SourceRemote   = "remote"
	SourceLocal    = "local"
	SourceDefaults = "defaults"
)

// PushTimeout bounds each asynchronous remote push.
const PushTimeout = 15 * time.Second

// Remote is the authoritative layout store.
type Remote interface {
	FetchLayout(ctx context.Context) (grid.Layout, error)
	SaveLayout(ctx context.Context, layout grid.Layout) error
	ResetLayout(ctx context.Context) error
}

type Config struct {
	Remote   Remote // optional
	Local    *LocalStore
	Notifier Notifier
	// Defaults builds the starter layout when nothing is stored.
	Defaults func() grid.Layout
	Log      *slog.Logger
}

// Persister implements the load and save sequences on top of a remote store
// and a local cache. Remote pushes run in the background, one at a time and
// in the order they were scheduled; Wait joins them.
type Persister struct {
	remote   Remote
	local    *LocalStore
	notify   Notifier
	defaults func() grid.Layout
	log      *slog.Logger

	wg       sync.WaitGroup
	mu       sync.Mutex
	queue    []push
	draining bool
}

type push struct {
	ctx context.Context
	fn  func(ctx context.Context)
}

func New(cfg Config) *Persister {
	p := &Persister{
		remote:   cfg.Remote,
		local:    cfg.Local,
		notify:   cfg.Notifier,
		defaults: cfg.Defaults,
		log:      cfg.Log,
	}
	if p.log == nil {
		p.log = slog.Default()
	}
	if p.notify == nil {
		p.notify = LogNotifier{Log: p.log}
	}
	if p.defaults == nil {
		p.defaults = func() grid.Layout { return grid.DefaultLayout(grid.NewRoleSet(), nil) }
	}
	return p
}

// Load resolves the layout: remote, then the local cache, then defaults.
// A layout adopted from the cache is pushed back to the remote in the
// background. Defaults go through the full save sequence.
func (p *Persister) Load(ctx context.Context) (grid.Layout, string, error) {
	var sources []Source[grid.Layout]
	if p.remote != nil {
		sources = append(sources, Source[grid.Layout]{Name: SourceRemote, Fetch: p.remote.FetchLayout})
	}
	if p.local != nil {
		sources = append(sources, Source[grid.Layout]{Name: SourceLocal, Fetch: p.local.Load})
	}
	chain := Chain[grid.Layout]{
		Sources: sources,
		Empty:   func(l grid.Layout) bool { return len(l) == 0 },
		OnFailure: func(name string, err error) {
			if errors.Is(err, ErrEmpty) {
				p.log.Debug("layout source empty", "source", name)
				return
			}
			p.log.Warn("layout source failed", "source", name, "error", err)
		},
	}

	layout, src, err := chain.Resolve(ctx)
	if err == nil {
		p.log.Info("dashboard layout loaded", "source", src, "widgets", len(layout))
		if src == SourceLocal {
			p.repair(ctx, layout)
		}
		return layout, src, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, "", ctxErr
	}

	layout = p.defaults()
	p.log.Info("dashboard layout defaulted", "widgets", len(layout))
	if err := p.Save(ctx, layout); err != nil {
		return layout, SourceDefaults, err
	}
	return layout, SourceDefaults, nil
}

// Save writes the local cache synchronously, then pushes to the remote in
// the background. A failed local write aborts the save before the remote is
// contacted.
func (p *Persister) Save(ctx context.Context, layout grid.Layout) error {
	if p.local != nil {
		if err := p.local.Store(ctx, layout); err != nil {
			p.log.Error("failed to cache dashboard layout", "error", err)
			p.notify.Notify(LevelError, MsgSaveFailed)
			return err
		}
	}
	if p.remote == nil {
		p.notify.Notify(LevelInfo, MsgSavedLocal)
		return nil
	}

	snapshot := layout.Clone()
	p.goPush(ctx, func(ctx context.Context) {
		if err := p.remote.SaveLayout(ctx, snapshot); err != nil {
			p.log.Warn("remote layout save failed", "error", err)
			p.notify.Notify(LevelInfo, MsgSavedLocal)
			return
		}
		p.notify.Notify(LevelSuccess, MsgSaved)
	})
	return nil
}

// Reset clears the cached and the remote layout. Pending pushes are joined
// first so none of them can restore the old layout afterwards.
func (p *Persister) Reset(ctx context.Context) error {
	p.Wait()
	var errList []error
	if p.local != nil {
		if err := p.local.Clear(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	if p.remote != nil {
		if err := p.remote.ResetLayout(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	if err := errors.Join(errList...); err != nil {
		p.log.Error("failed to reset dashboard layout", "error", err)
		p.notify.Notify(LevelError, MsgResetFailed)
		return err
	}
	return nil
}

// Wait blocks until every scheduled remote push has finished.
func (p *Persister) Wait() {
	p.wg.Wait()
}

// repair pushes a layout recovered from the cache back to the remote.
// Failure is only logged.
func (p *Persister) repair(ctx context.Context, layout grid.Layout) {
	if p.remote == nil {
		return
	}
	snapshot := layout.Clone()
	p.goPush(ctx, func(ctx context.Context) {
		if err := p.remote.SaveLayout(ctx, snapshot); err != nil {
			p.log.Warn("layout repair push failed", "error", err)
			return
		}
		p.log.Info("layout repaired on remote", "widgets", len(snapshot))
	})
}

// goPush queues fn behind every push scheduled before it. A single drain
// goroutine runs while the queue is non-empty.
func (p *Persister) goPush(ctx context.Context, fn func(ctx context.Context)) {
	p.wg.Add(1)
	p.mu.Lock()
	p.queue = append(p.queue, push{ctx: context.WithoutCancel(ctx), fn: fn})
	start := !p.draining
	p.draining = true
	p.mu.Unlock()
	if start {
		go p.drain()
	}
}

func (p *Persister) drain() {
	for {
		p.mu.Lock()
		if len(p.queue) == 0 {
			p.draining = false
			p.mu.Unlock()
			return
		}
		next := p.queue[0]
		p.queue[0] = push{}
		p.queue = p.queue[1:]
		p.mu.Unlock()

		ctx, cancel := context.WithTimeout(next.ctx, PushTimeout)
		next.fn(ctx)
		cancel()
		p.wg.Done()
	}
}
