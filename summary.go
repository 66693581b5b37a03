package activeset

import (
	"fmt"
	"io"
	"log/slog"
)

// Summary returns a one-line diagnostic description of s, e.g.
// "NUMBER OF ACTIVE:3,STATUS:PARTLY_ACTIVE,".
// The count is the number of stored indices, whatever the mode.
func (s *Selector) Summary() string {
	return fmt.Sprintf("NUMBER OF ACTIVE:%d,STATUS:%s,", len(s.indices), s.mode)
}

// WriteSummary writes Summary to w.
func (s *Selector) WriteSummary(w io.Writer) error {
	_, err := io.WriteString(w, s.Summary())
	return err
}

// String implements fmt.Stringer.
func (s *Selector) String() string {
	return s.Summary()
}

// LogValue implements slog.LogValuer.
func (s *Selector) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("mode", s.mode.String()),
		slog.Int("active", len(s.indices)),
	)
}
