//go:generate mockgen -source scanner.go -destination scanner_mock.go -package scanner Decoder

package scanner

import (
	"context"
	"fmt"
	"pricescan/pkg/config"
	"pricescan/pkg/errors"
)

const (
	FacingEnvironment = "environment"
	FacingUser        = "user"
)

type (
	// Options - decoder start-up parameters.
	Options struct {
		// Target - surface the live camera is rendered into
		Target string
		// FacingMode - preferred camera, FacingEnvironment or FacingUser
		FacingMode string
		// Workers - number of parallel decode workers
		Workers int
		// Readers - enabled symbology readers, tried in this order
		Readers []string
	}

	// Detection - one decoded barcode.
	Detection struct {
		Code   string
		Format string
	}

	// Decoder - barcode decoder collaborator.
	Decoder interface {
		Init(ctx context.Context, opts Options) error
		// Start - begins decoding, detections are delivered to a single consumer.
		// The channel is closed when the decoder stops.
		Start(ctx context.Context) (<-chan Detection, error)
		Stop() error
	}
)

func NewOptions(config config.Scanner) Options {
	readers := make([]string, len(config.Readers))
	copy(readers, config.Readers)
	return Options{
		Target:     config.Target,
		FacingMode: config.FacingMode,
		Workers:    config.Workers,
		Readers:    readers,
	}
}

func (o Options) Validate() error {
	if o.FacingMode != FacingEnvironment && o.FacingMode != FacingUser {
		return fmt.Errorf("unknown facing mode=%s", o.FacingMode)
	}
	if o.Workers < 1 {
		return fmt.Errorf("workers=%d, at least one decode worker is required", o.Workers)
	}
	if len(o.Readers) == 0 {
		return fmt.Errorf("no symbology readers enabled")
	}
	for _, name := range o.Readers {
		if _, ok := symbologies[name]; !ok {
			return fmt.Errorf("%w: %s", errors.ErrUnknownSymbology, name)
		}
	}
	return nil
}
