package emit

import (
	"bufio"
	"io"

	"github.com/biostrand/gtconform/internal/marker"
	"github.com/biostrand/gtconform/internal/phase"
)

const logHeader = "CHROM\tPOS\tID\tREF\tALT\tALLELE\tFREQ\tR2\tSUMMARY\tINFO"

// Logger writes the per-variant verdict log: one row per target marker,
// whether it was matched and scored or rejected before scoring began.
type Logger struct {
	w *bufio.Writer
}

// NewLogger wraps w for buffered log output.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: bufio.NewWriter(w)}
}

// WriteHeader writes the log's column header line.
func (l *Logger) WriteHeader() error {
	l.w.WriteString(logHeader)
	l.w.WriteByte('\n')
	return l.w.Flush()
}

// WriteMatched writes a row for a target marker that was matched to a
// reference marker and scored, recording the allele, frequency, and
// correlation evidence phases and the final merged verdict.
func (l *Logger) WriteMatched(m *marker.Marker, allelePhase, freqPhase, corPhase, merged phase.Phase) error {
	l.w.WriteString(m.String())
	l.w.WriteByte('\t')
	l.w.WriteString(allelePhase.Summary())
	l.w.WriteByte('\t')
	l.w.WriteString(freqPhase.Summary())
	l.w.WriteByte('\t')
	l.w.WriteString(corPhase.Summary())
	l.w.WriteByte('\t')
	l.w.WriteString(merged.Disposition())
	l.w.WriteByte('\t')
	l.w.WriteString(merged.Summary())
	l.w.WriteByte('\n')
	return nil
}

// WriteRejected writes a row for a target marker dropped before scoring,
// naming reason (e.g. "NOT_IN_REFERENCE") in the log's INFO column.
func (l *Logger) WriteRejected(m *marker.Marker, reason string) error {
	l.w.WriteString(m.String())
	l.w.WriteString("\tNOT_PERFORMED\tNOT_PERFORMED\tNOT_PERFORMED\tREMOVED\t")
	l.w.WriteString(reason)
	l.w.WriteByte('\n')
	return nil
}

// Flush flushes any buffered output.
func (l *Logger) Flush() error {
	return l.w.Flush()
}
