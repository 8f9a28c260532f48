package habitat

import (
	"fmt"
	"io"
)

// SetDebugMode enables or disables debug mode. When enabled, every grab,
// release, cancellation and removal is logged, and configuration warnings
// are printed once.
func (b *Board) SetDebugMode(enabled bool) {
	b.debug = enabled
	if enabled {
		for _, w := range b.warnings {
			_, _ = fmt.Fprintf(b.debugOut, "[habitat] warning: %s\n", w)
		}
	}
}

// SetDebugOutput redirects debug logging. The default is os.Stderr.
func (b *Board) SetDebugOutput(w io.Writer) {
	b.debugOut = w
}

func (b *Board) debugf(format string, args ...any) {
	if !b.debug {
		return
	}
	_, _ = fmt.Fprintf(b.debugOut, "[habitat] "+format+"\n", args...)
}
