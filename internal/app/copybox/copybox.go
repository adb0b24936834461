// Package copybox implements the copy-to-clipboard control shown next to a peer's IP
// address and public key.
package copybox

import (
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"wgdash/internal/pkg/errs"
)

// FlashDuration is how long a box reports itself as copied after a successful copy.
const FlashDuration = time.Second

// Writer puts text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the clipboard of the machine the process runs on.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Box holds a value that can be copied.
type Box struct {
	Text string

	writer Writer
	now    func() time.Time

	mu       sync.Mutex
	copiedAt time.Time
}

// New returns a box for text backed by the system clipboard.
func New(text string) *Box {
	return NewWithWriter(text, SystemClipboard{})
}

// NewWithWriter returns a box for text backed by w.
func NewWithWriter(text string, w Writer) *Box {
	return &Box{Text: text, writer: w, now: time.Now}
}

// SetClock replaces the time source.
func (b *Box) SetClock(now func() time.Time) {
	b.now = now
}

// Copy writes the box text to the clipboard. The copied flag is only set on success.
func (b *Box) Copy() error {
	if err := b.writer.WriteAll(b.Text); err != nil {
		return errs.Wrap(errs.ErrClipboardFailed, err)
	}

	b.mu.Lock()
	b.copiedAt = b.now()
	b.mu.Unlock()

	return nil
}

// Copied reports whether the last successful copy happened less than FlashDuration ago.
func (b *Box) Copied() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.copiedAt.IsZero() {
		return false
	}
	return b.now().Sub(b.copiedAt) < FlashDuration
}

// Copy writes text to the system clipboard.
func Copy(text string) error {
	return New(text).Copy()
}
