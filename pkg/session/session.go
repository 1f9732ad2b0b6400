//go:generate mockgen -source session.go -destination session_mock.go -package session View

package session

import (
	"pricescan/pkg/models"

	"github.com/google/uuid"
)

const (
	Idle State = iota
	Scanning
	Entry
)

type (
	// State - step of the detection -> form -> save sequence.
	State int

	// Session - transient state of one user at the price terminal.
	Session struct {
		ID    uuid.UUID
		State State
		// Code - last detected code awaiting a price, empty unless State is Entry
		Code string
	}

	// View - UI surface the scan flow drives.
	View interface {
		ShowScanTrigger()
		HideScanTrigger()
		ShowCamera(target string)
		HideCamera()
		// ShowForm - price entry form pre-filled with code and an empty price
		ShowForm(code string)
		HideForm()
		RenderList(records []models.PriceRecord)
		Notify(message string)
	}
)

func New() *Session {
	return &Session{
		ID:    uuid.New(),
		State: Idle,
	}
}

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scanning:
		return "scanning"
	case Entry:
		return "entry"
	}
	return "unknown"
}

func (s *Session) reset() {
	s.Code = ""
	s.State = Idle
}
