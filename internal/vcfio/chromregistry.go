package vcfio

import "sync"

// ChromRegistry is a process-wide intern table for chromosome identifiers.
// It is an explicit value threaded from the CLI entry point into whichever
// readers need it, not a package-level singleton: callers that don't care
// about interning can simply not construct one.
type ChromRegistry struct {
	mu      sync.Mutex
	byName  map[string]int
	byIndex []string
}

// NewChromRegistry returns an empty registry.
func NewChromRegistry() *ChromRegistry {
	return &ChromRegistry{byName: make(map[string]int)}
}

// GetOrAssign returns chrom's index, assigning it the next index on first
// sight. The canonical string instance for that index can be retrieved
// with Name, so that every Marker sharing a chromosome holds the same
// backing string rather than a fresh copy per VCF line.
func (r *ChromRegistry) GetOrAssign(chrom string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx, ok := r.byName[chrom]; ok {
		return idx
	}
	idx := len(r.byIndex)
	r.byIndex = append(r.byIndex, chrom)
	r.byName[chrom] = idx
	return idx
}

// Name returns the canonical string for idx, as assigned by GetOrAssign.
func (r *ChromRegistry) Name(idx int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byIndex[idx]
}

// Intern returns the canonical string instance for chrom, registering it
// first if necessary.
func (r *ChromRegistry) Intern(chrom string) string {
	return r.Name(r.GetOrAssign(chrom))
}
