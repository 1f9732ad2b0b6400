package scanner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"pricescan/pkg/errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type (
	// Wedge - decoder for keyboard-wedge barcode scanners, the device types every
	// payload followed by a newline into input. Each Start yields at most one
	// detection, after which the decoder stops reading so the rest of input stays
	// available to the caller.
	Wedge struct {
		mu      sync.Mutex
		input   *bufio.Reader
		logger  *zap.Logger
		opts    Options
		readers []Reader
		ready   bool
		cancel  context.CancelFunc
	}
)

func NewWedge(logger *zap.Logger, input *bufio.Reader) *Wedge {
	log := logger.Named("WedgeDecoder")
	return &Wedge{
		input:  input,
		logger: log,
	}
}

func (w *Wedge) Init(ctx context.Context, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.input == nil {
		return fmt.Errorf("no input device attached")
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return errors.ErrDecoderRunning
	}
	readers := make([]Reader, 0, len(opts.Readers))
	for _, name := range opts.Readers {
		readers = append(readers, symbologies[name])
	}
	w.opts = opts
	w.readers = readers
	w.ready = true
	w.logger.Sugar().Infof("decoder ready, target=%s, facing=%s, workers=%d, readers=%v", opts.Target, opts.FacingMode, opts.Workers, opts.Readers)
	return nil
}

func (w *Wedge) Start(ctx context.Context) (<-chan Detection, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.ready {
		return nil, errors.ErrDecoderNotReady
	}
	if w.cancel != nil {
		return nil, errors.ErrDecoderRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	detections := make(chan Detection, 1)
	go w.run(ctx, detections, w.readers, w.opts.Workers)
	return detections, nil
}

// Stop - cancels decoding, Init is required before the next Start.
func (w *Wedge) Stop() error {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.ready = false
	w.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	return nil
}

func (w *Wedge) run(ctx context.Context, detections chan<- Detection, readers []Reader, workers int) {
	defer close(detections)
	for {
		if ctx.Err() != nil {
			return
		}
		line, err := w.input.ReadString('\n')
		payload := strings.TrimSpace(line)
		if payload != "" {
			if d, ok := decode(payload, readers, workers); ok {
				select {
				case detections <- d:
				case <-ctx.Done():
				}
				return
			}
			w.logger.Sugar().Infof("no reader accepted payload=%q", payload)
		}
		if err != nil {
			if err != io.EOF {
				w.logger.Sugar().Errorf("can't read input: (%s)", err.Error())
			}
			return
		}
	}
}

// decode - offers payload to every reader across workers goroutines,
// the first reader in configured order that accepts it wins.
func decode(payload string, readers []Reader, workers int) (Detection, bool) {
	if workers > len(readers) {
		workers = len(readers)
	}
	accepted := make([]bool, len(readers))
	jobs := make(chan int)
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				accepted[idx] = readers[idx].Accept(payload)
			}
		}()
	}
	for idx := range readers {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	for idx, ok := range accepted {
		if ok {
			return Detection{Code: payload, Format: readers[idx].Format()}, true
		}
	}
	return Detection{}, false
}
