// Package ui renders console output: the download progress bar, the Y/n prompt and
// styled status lines.
package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/ravendevteam/toolbox/internal/download"
)

const barWidth = 40

// Bar draws a single-line progress bar such as "Downloading: [#####     ] 42%"
type Bar struct {
	out   io.Writer
	model progress.Model

	mu      sync.Mutex
	label   string
	last    int // last rendered percent, or byte count in KiB when the total is unknown
	started bool
}

// NewBar creates a bar writing to out
func NewBar(out io.Writer) *Bar {
	m := progress.New(progress.WithoutPercentage(), progress.WithWidth(barWidth), progress.WithSolidFill("63"))
	m.Full = '#'
	m.Empty = ' '
	return &Bar{out: out, model: m}
}

// Start begins a new transfer and returns the callback feeding it
func (b *Bar) Start(label string) download.ProgressFunc {
	b.mu.Lock()
	b.label = label
	b.last = -1
	b.started = true
	b.mu.Unlock()

	return b.update
}

func (b *Bar) update(written, total int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if total <= 0 {
		kib := int(written / 1024)
		if kib == b.last {
			return
		}
		b.last = kib
		fmt.Fprintf(b.out, "\r%s: %s", b.label, FormatBytes(written))
		return
	}

	pct := int(written * 100 / total)
	if pct > 100 {
		pct = 100
	}
	if pct == b.last {
		return
	}
	b.last = pct
	fmt.Fprintf(b.out, "\r%s: [%s] %3d%%", b.label, b.model.ViewAs(float64(pct)/100), pct)
}

// Finish ends the current line
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		fmt.Fprintln(b.out)
		b.started = false
	}
}

// FormatBytes renders n with a binary unit suffix
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
