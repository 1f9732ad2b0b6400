package session

import (
	"fmt"
	"io"
	"pricescan/pkg/models"
)

type (
	// Terminal - View printing to a text terminal. Hiding only updates state,
	// printed lines stay where they are.
	Terminal struct {
		out     io.Writer
		trigger bool
		camera  bool
		form    bool
	}
)

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) ShowScanTrigger() {
	t.trigger = true
	_, _ = fmt.Fprintln(t.out, "ready, scan a barcode")
}

func (t *Terminal) HideScanTrigger() {
	t.trigger = false
}

func (t *Terminal) ShowCamera(target string) {
	t.camera = true
	_, _ = fmt.Fprintf(t.out, "scanning on %s...\n", target)
}

func (t *Terminal) HideCamera() {
	t.camera = false
}

func (t *Terminal) ShowForm(code string) {
	t.form = true
	_, _ = fmt.Fprintf(t.out, "code: %s\nprice: ", code)
}

func (t *Terminal) HideForm() {
	if t.form {
		_, _ = fmt.Fprintln(t.out)
	}
	t.form = false
}

func (t *Terminal) RenderList(records []models.PriceRecord) {
	_, _ = fmt.Fprintln(t.out, "saved prices:")
	if len(records) == 0 {
		_, _ = fmt.Fprintln(t.out, "  (none)")
		return
	}
	for _, record := range records {
		_, _ = fmt.Fprintf(t.out, "  %s\n", record)
	}
}

func (t *Terminal) Notify(message string) {
	_, _ = fmt.Fprintf(t.out, "! %s\n", message)
}
