package offline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"pricescan/pkg/config"
	"pricescan/pkg/errors"
	"sync"

	"go.uber.org/zap"
)

type (
	// State - lifecycle phase of a Worker.
	State int
)

const (
	StateParsed State = iota
	StateInstalling
	StateInstalled
	StateActivating
	StateActivated
	// StateRedundant - install failed, the worker never serves from its cache
	StateRedundant
)

func (s State) String() string {
	switch s {
	case StateParsed:
		return "parsed"
	case StateInstalling:
		return "installing"
	case StateInstalled:
		return "installed"
	case StateActivating:
		return "activating"
	case StateActivated:
		return "activated"
	case StateRedundant:
		return "redundant"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type (
	// Worker - keeps one generation of the asset manifest cached and answers
	// requests from it once activated. Install must succeed before Activate,
	// requests are only answered from cache after Activate returns.
	Worker struct {
		mu         sync.RWMutex
		state      State
		generation string
		manifest   []string
		caches     Storage
		network    Fetcher
		logger     *zap.Logger
	}
)

func NewWorker(logger *zap.Logger, config config.Assets, caches Storage, network Fetcher) *Worker {
	log := logger.Named("AssetWorker")
	manifest := make([]string, len(config.Manifest))
	copy(manifest, config.Manifest)
	return &Worker{
		state:      StateParsed,
		generation: config.Generation,
		manifest:   manifest,
		caches:     caches,
		network:    network,
		logger:     log,
	}
}

func (w *Worker) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

func (w *Worker) Generation() string {
	return w.generation
}

func (w *Worker) transition(from State, to State) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != from {
		return fmt.Errorf("%w: %s -> %s, current=%s", errors.ErrBadTransition, from, to, w.state)
	}
	w.state = to
	return nil
}

func (w *Worker) setState(state State) {
	w.mu.Lock()
	w.state = state
	w.mu.Unlock()
}

// Install - opens the cache named by the generation and fills it with every manifest path.
// A failed install leaves the worker redundant, retrying is up to the caller.
func (w *Worker) Install(ctx context.Context) error {
	if err := w.transition(StateParsed, StateInstalling); err != nil {
		return err
	}
	w.logger.Sugar().Infof("install generation=%s, assets=%d", w.generation, len(w.manifest))

	cache, err := w.caches.Open(ctx, w.generation)
	if err == nil {
		err = AddAll(ctx, cache, w.network, w.manifest)
	}
	if err != nil {
		w.setState(StateRedundant)
		w.logger.Sugar().Errorf("can't install generation=%s: (%s)", w.generation, err.Error())
		return fmt.Errorf("%w: generation=%s: %s", errors.ErrInstallFailed, w.generation, err.Error())
	}

	w.setState(StateInstalled)
	w.logger.Sugar().Infof("installed generation=%s", w.generation)
	return nil
}

// Activate - deletes every cache that does not belong to the current generation.
// On failure the worker goes back to installed so activation can be attempted again.
func (w *Worker) Activate(ctx context.Context) error {
	if err := w.transition(StateInstalled, StateActivating); err != nil {
		return err
	}

	names, err := w.caches.Keys(ctx)
	if err != nil {
		w.setState(StateInstalled)
		return fmt.Errorf("can't list caches: %w", err)
	}
	for _, name := range names {
		if name == w.generation {
			continue
		}
		w.logger.Sugar().Infof("delete stale cache=%s", name)
		if _, err := w.caches.Delete(ctx, name); err != nil {
			w.setState(StateInstalled)
			return fmt.Errorf("can't delete stale cache=%s: %w", name, err)
		}
	}

	w.setState(StateActivated)
	w.logger.Sugar().Infof("activated generation=%s", w.generation)
	return nil
}

// Run - installs then activates.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.Install(ctx); err != nil {
		return err
	}
	return w.Activate(ctx)
}

// Fetch - answers req from the resident caches once activated, otherwise and on a miss
// the network response is returned untouched and nothing gets cached.
func (w *Worker) Fetch(ctx context.Context, req *http.Request) (*http.Response, error) {
	if w.State() == StateActivated {
		cached, err := w.caches.Match(ctx, req)
		if err == nil {
			return cached.HTTPResponse(req), nil
		}
		if !errors.ErrorIs(err, errors.ErrCacheMiss) {
			w.logger.Sugar().Errorf("can't match request=%s: (%s)", requestKey(req), err.Error())
		}
	}
	return w.network.Fetch(ctx, req)
}

func (w *Worker) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	resp, err := w.Fetch(req.Context(), req)
	if err != nil {
		w.logger.Sugar().Errorf("can't fetch request=%s: (%s)", requestKey(req), err.Error())
		http.Error(rw, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	header := rw.Header()
	for key, values := range resp.Header {
		header[key] = values
	}
	rw.WriteHeader(resp.StatusCode)
	if req.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(rw, resp.Body); err != nil {
		w.logger.Sugar().Errorf("can't write response for request=%s: (%s)", requestKey(req), err.Error())
	}
}
