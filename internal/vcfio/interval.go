package vcfio

import (
	"fmt"
	"strconv"
	"strings"
)

// ChromInterval is a chromosome, optionally restricted to a 1-based
// inclusive position range.
type ChromInterval struct {
	Chrom string
	Start int // -1 if unbounded
	End   int // -1 if unbounded
}

// ParseChromInterval parses "<chrom>" or "<chrom>:<start>-<end>".
func ParseChromInterval(s string) (*ChromInterval, error) {
	chrom, rest, hasRange := strings.Cut(s, ":")
	if chrom == "" {
		return nil, fmt.Errorf("invalid chrom interval %q: empty chromosome", s)
	}
	if !hasRange {
		return &ChromInterval{Chrom: chrom, Start: -1, End: -1}, nil
	}
	startStr, endStr, ok := strings.Cut(rest, "-")
	if !ok {
		return nil, fmt.Errorf("invalid chrom interval %q: expected <start>-<end>", s)
	}
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid chrom interval %q: non-numeric start", s)
	}
	end, err := strconv.Atoi(endStr)
	if err != nil {
		return nil, fmt.Errorf("invalid chrom interval %q: non-numeric end", s)
	}
	if start > end {
		return nil, fmt.Errorf("invalid chrom interval %q: start > end", s)
	}
	return &ChromInterval{Chrom: chrom, Start: start, End: end}, nil
}

// Contains reports whether a record at chrom:pos, with end annotation
// markerEnd (-1 if absent), falls inside the interval.
func (ci *ChromInterval) Contains(chrom string, pos, markerEnd int) bool {
	if chrom != ci.Chrom {
		return false
	}
	if ci.Start == -1 {
		return true
	}
	upper := pos
	if markerEnd != -1 && markerEnd > upper {
		upper = markerEnd
	}
	return pos >= ci.Start && upper <= ci.End
}
