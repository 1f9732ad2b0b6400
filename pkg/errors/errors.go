package errors

import (
	"errors"
	"fmt"
)

var (
	ErrorIs = errors.Is

	ErrInvalidPrice  = fmt.Errorf("invalid price")
	ErrNoScannedCode = fmt.Errorf("no scanned code")
	ErrInternal      = fmt.Errorf("internal error")

	ErrDecoderInit      = fmt.Errorf("can't initialize barcode decoder")
	ErrDecoderNotReady  = fmt.Errorf("barcode decoder is not initialized")
	ErrDecoderRunning   = fmt.Errorf("barcode decoder is already running")
	ErrNoDetection      = fmt.Errorf("barcode decoder stopped without a detection")
	ErrUnknownSymbology = fmt.Errorf("unknown symbology reader")

	ErrInstallFailed = fmt.Errorf("asset cache install failed")
	ErrNotActivated  = fmt.Errorf("asset worker is not activated")
	ErrBadTransition = fmt.Errorf("asset worker lifecycle transition not allowed")
	ErrCacheMiss     = fmt.Errorf("no cached response")
)
