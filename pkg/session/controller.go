package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"pricescan/pkg/errors"
	"pricescan/pkg/ledger"
	"pricescan/pkg/scanner"
	"strings"

	"go.uber.org/zap"
)

type (
	// Controller - drives a Session through scan, price entry and save.
	Controller struct {
		logger  *zap.Logger
		prices  ledger.Ledger
		decoder scanner.Decoder
		view    View
		opts    scanner.Options
	}
)

func NewController(logger *zap.Logger, prices ledger.Ledger, decoder scanner.Decoder, view View, opts scanner.Options) *Controller {
	log := logger.Named("ScanSession")
	return &Controller{
		logger:  log,
		prices:  prices,
		decoder: decoder,
		view:    view,
		opts:    opts,
	}
}

// Refresh - replaces the rendered list with the current ledger contents.
func (c *Controller) Refresh(ctx context.Context) {
	c.view.RenderList(c.prices.Load(ctx))
}

// Scan - runs the decoder until the first detection and opens the price form for it.
// A pending unsaved entry is discarded.
func (c *Controller) Scan(ctx context.Context, s *Session) error {
	if s.State == Entry {
		c.logger.Sugar().Infof("session=%s, discarding unsaved code=%s", s.ID, s.Code)
		c.view.HideForm()
	}
	s.reset()

	c.view.HideScanTrigger()
	c.view.ShowCamera(c.opts.Target)
	s.State = Scanning

	err := c.decoder.Init(ctx, c.opts)
	if err != nil {
		c.abort(s, fmt.Sprintf("Camera unavailable: %s", err.Error()))
		return fmt.Errorf("%w: %s", errors.ErrDecoderInit, err.Error())
	}

	detections, err := c.decoder.Start(ctx)
	if err != nil {
		c.abort(s, fmt.Sprintf("Camera unavailable: %s", err.Error()))
		return fmt.Errorf("%w: %s", errors.ErrDecoderInit, err.Error())
	}

	var (
		detection scanner.Detection
		ok        bool
	)
	select {
	case detection, ok = <-detections:
	case <-ctx.Done():
	}

	if err := c.decoder.Stop(); err != nil {
		c.logger.Sugar().Errorf("can't stop decoder: (%s)", err.Error())
	}
	c.view.HideCamera()

	if ctxErr := ctx.Err(); ctxErr != nil && !ok {
		c.view.ShowScanTrigger()
		s.reset()
		return ctxErr
	}
	if !ok {
		c.view.ShowScanTrigger()
		s.reset()
		return errors.ErrNoDetection
	}

	c.logger.Sugar().Infof("session=%s, detected code=%s, format=%s", s.ID, detection.Code, detection.Format)
	s.Code = detection.Code
	s.State = Entry
	c.view.ShowForm(detection.Code)
	return nil
}

// Save - stores the price typed for the session's code. Without a pending code
// or with an invalid price nothing is written and nothing is shown.
func (c *Controller) Save(ctx context.Context, s *Session, input string) error {
	if s.State != Entry || strings.TrimSpace(s.Code) == "" {
		return errors.ErrNoScannedCode
	}
	price, err := ledger.ParsePrice(input)
	if err != nil {
		return err
	}

	if err := c.prices.Save(ctx, s.Code, price); err != nil {
		return err
	}

	s.reset()
	c.view.HideForm()
	c.view.ShowScanTrigger()
	c.Refresh(ctx)
	return nil
}

// Run - terminal loop: each pass scans one code from input and reads the price
// from the following lines, asking again until one is valid. Returns nil once
// input is exhausted.
func (c *Controller) Run(ctx context.Context, s *Session, input *bufio.Reader) error {
	c.Refresh(ctx)
	c.view.ShowScanTrigger()
	for {
		err := c.Scan(ctx, s)
		if errors.ErrorIs(err, errors.ErrNoDetection) {
			return nil
		}
		if err != nil {
			return err
		}

		done, err := c.enterPrice(ctx, s, input)
		if err != nil || done {
			return err
		}
	}
}

// enterPrice - reads lines until one saves as the price of the pending code.
// done is true once input is exhausted.
func (c *Controller) enterPrice(ctx context.Context, s *Session, input *bufio.Reader) (bool, error) {
	for {
		line, readErr := input.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return false, fmt.Errorf("can't read price: %w", readErr)
		}

		err := c.Save(ctx, s, line)
		switch {
		case err == nil:
			return readErr == io.EOF, nil
		case errors.ErrorIs(err, errors.ErrInvalidPrice):
			c.logger.Sugar().Infof("session=%s, invalid price input=%q for code=%s", s.ID, strings.TrimSpace(line), s.Code)
			if readErr == io.EOF {
				return true, nil
			}
			c.view.ShowForm(s.Code)
		case errors.ErrorIs(err, errors.ErrNoScannedCode):
			c.logger.Sugar().Infof("session=%s, ignored price input=%q", s.ID, strings.TrimSpace(line))
			return readErr == io.EOF, nil
		default:
			return false, fmt.Errorf("can't save price: %w", err)
		}
	}
}

func (c *Controller) abort(s *Session, notice string) {
	c.view.HideCamera()
	c.view.Notify(notice)
	c.view.ShowScanTrigger()
	s.reset()
}
