// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package status tracks a form's submit control and the error banners shown
// to the user.
package status

import (
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// ProcessingLabel is the submit label shown while a request is in flight.
const ProcessingLabel = "⟳ Processing..."

// Button is a form's submit control. It remembers its original label so
// Idle can restore it after a submission.
type Button struct {
	original string
	state    types.ButtonState
}

// NewButton returns an enabled button labelled label.
func NewButton(label string) *Button {
	return &Button{
		original: label,
		state:    types.ButtonState{Label: label},
	}
}

// Busy disables the button and shows the processing label.
func (b *Button) Busy() {
	b.state = types.ButtonState{Disabled: true, Label: ProcessingLabel}
}

// Idle enables the button and restores its original label.
func (b *Button) Idle() {
	b.state = types.ButtonState{Label: b.original}
}

// State returns the current button state.
func (b *Button) State() types.ButtonState { return b.state }

// Original returns the label recorded when the button was created.
func (b *Button) Original() string { return b.original }

// Reporter collects error banners and writes status lines to w.
type Reporter struct {
	mu      sync.Mutex
	w       io.Writer
	banners []types.Banner
}

// NewReporter returns a Reporter writing to w. A nil w discards output.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{w: w}
}

// Error inserts a dismissible banner at the top of the list and prints it.
func (r *Reporter) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banners = append([]types.Banner{{Message: msg, Dismissible: true}}, r.banners...)
	fmt.Fprintf(r.w, "❌ Error: %s\n", msg)
}

// Success prints a success status line. It does not create a banner.
func (r *Reporter) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "✅ %s\n", msg)
}

// Infof prints a progress line.
func (r *Reporter) Infof(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Banners returns the current banners, newest first.
func (r *Reporter) Banners() []types.Banner {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Banner, len(r.banners))
	copy(out, r.banners)
	return out
}

// Dismiss removes the banner at index i. It reports whether one was removed.
func (r *Reporter) Dismiss(i int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.banners) || !r.banners[i].Dismissible {
		return false
	}
	r.banners = append(r.banners[:i], r.banners[i+1:]...)
	return true
}
