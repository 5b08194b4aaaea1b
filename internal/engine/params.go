package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/biostrand/gtconform/internal/vcfio"
)

// Params is the reconciliation engine's command-line parameter set, one
// field per key=value argument accepted by the gtconform primary mode.
type Params struct {
	Ref            string
	Gt             string
	Chrom          string
	Out            string
	MatchID        bool // true for match=ID (default), false for match=POS
	Strict         bool
	ExcludeSamples string // empty if excludesamples was not given
}

// Usage describes the key=value argument contract, printed on a
// Configuration error.
const Usage = `usage: gtconform [arguments]

where [arguments] have the format
  ref=<reference VCF file with GT data>                         (required)
  gt=<target VCF file with GT data>                             (required)
  chrom=<[chrom] or [chrom]:[start]-[end]>                      (required)
  out=<output file prefix>                                      (required)
  match=<ID or POS (field for matching VCF records)>            (default: ID)
  strict=<true if strand alignment requires MAF or R2 evidence> (default: false)
  excludesamples=<file with 1 sample ID per line>               (optional)

Two output files are created:
  <out prefix>.vcf.gz - reference-matched target data.
  <out prefix>.log    - summary of result for each target marker.
`

// ParseParams parses a bare key=value argument list, the form ConformMain's
// predecessor used directly as argv and gtconform accepts as the tail of
// its own command line when no version/config subcommand is given.
func ParseParams(args []string) (Params, error) {
	raw := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return Params{}, fmt.Errorf("malformed argument %q, expected key=value", arg)
		}
		if _, dup := raw[key]; dup {
			return Params{}, fmt.Errorf("duplicate argument %q", key)
		}
		raw[key] = value
	}

	var p Params
	var err error
	if p.Ref, err = requiredString(raw, "ref"); err != nil {
		return Params{}, err
	}
	if p.Gt, err = requiredString(raw, "gt"); err != nil {
		return Params{}, err
	}
	if p.Chrom, err = requiredString(raw, "chrom"); err != nil {
		return Params{}, err
	}
	if p.Out, err = requiredString(raw, "out"); err != nil {
		return Params{}, err
	}
	if _, err := vcfio.ParseChromInterval(p.Chrom); err != nil {
		return Params{}, fmt.Errorf("chrom=%s: %w", p.Chrom, err)
	}

	match, ok := raw["match"]
	delete(raw, "match")
	if !ok {
		match = "ID"
	}
	switch strings.ToUpper(match) {
	case "ID":
		p.MatchID = true
	case "POS":
		p.MatchID = false
	default:
		return Params{}, fmt.Errorf("match=%s, expected ID or POS", match)
	}

	if v, ok := raw["strict"]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Params{}, fmt.Errorf("strict=%s, expected true or false", v)
		}
		p.Strict = b
	}
	delete(raw, "strict")

	p.ExcludeSamples = raw["excludesamples"]
	delete(raw, "excludesamples")

	if len(raw) > 0 {
		var unknown []string
		for k := range raw {
			unknown = append(unknown, k)
		}
		return Params{}, fmt.Errorf("unrecognized argument(s): %s", strings.Join(unknown, ", "))
	}
	return p, nil
}

func requiredString(raw map[string]string, key string) (string, error) {
	v, ok := raw[key]
	delete(raw, key)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required argument %s=", key)
	}
	return v, nil
}

// LooksLikeParams reports whether args plausibly form a key=value argument
// list rather than a version/config subcommand invocation: every token
// contains an '='. An empty args is not a param list.
func LooksLikeParams(args []string) bool {
	if len(args) == 0 {
		return false
	}
	for _, a := range args {
		if !strings.Contains(a, "=") {
			return false
		}
	}
	return true
}
