// Package vcfio streams VCF 4.x records into and out of the marker and
// genotype packages: a gzip/plain-text-detecting reader, a gzip writer,
// chromosome-interval filtering, and sample-exclusion handling.
package vcfio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/pgzip"

	"github.com/biostrand/gtconform/internal/genotype"
	"github.com/biostrand/gtconform/internal/marker"
)

// ParseError reports a malformed VCF line, with its 1-based line number.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}

// Reader streams (Marker, Record) pairs from a VCF file, transparently
// decompressing gzip input detected by magic bytes rather than file
// extension. A Reader opens its own file handle; reading the same
// physical file as both a filtered and unfiltered view is done by
// constructing two Readers over the same path, each independently
// closable.
type Reader struct {
	file       *os.File
	gz         *pgzip.Reader
	r          *bufio.Reader
	lineNumber int

	sampleNames []string // names surfaced by SampleNames, post-exclusion
	keepCols    []int    // indices into the full sample column list to retain; nil means keep all

	chromInterval *ChromInterval
	registry      *ChromRegistry
}

// Options configures a Reader.
type Options struct {
	// Excluded, if non-nil, names samples to drop from the genotype data
	// this Reader yields; an empty (non-nil) map keeps every sample while
	// still producing the "filtered" view's identity.
	Excluded map[string]struct{}
	// ChromInterval, if non-nil, restricts Next to records inside it.
	ChromInterval *ChromInterval
	// Registry, if non-nil, interns each record's chromosome string.
	Registry *ChromRegistry
}

// NewReader opens path (or stdin for "-") and parses its header.
func NewReader(path string, opts Options) (*Reader, error) {
	var f *os.File
	var err error
	if path == "-" {
		f = os.Stdin
	} else {
		f, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open vcf file: %w", err)
		}
	}

	rdr := &Reader{file: f, chromInterval: opts.ChromInterval, registry: opts.Registry}

	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		rdr.closeFile()
		return nil, fmt.Errorf("read vcf header: %w", err)
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := pgzip.NewReader(br)
		if err != nil {
			rdr.closeFile()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		rdr.gz = gz
		rdr.r = bufio.NewReader(gz)
	} else {
		rdr.r = br
	}

	if err := rdr.parseHeader(opts.Excluded); err != nil {
		rdr.Close()
		return nil, err
	}
	return rdr, nil
}

func (rdr *Reader) closeFile() {
	if rdr.file != nil && rdr.file != os.Stdin {
		rdr.file.Close()
	}
}

func (rdr *Reader) parseHeader(excluded map[string]struct{}) error {
	for {
		line, err := rdr.r.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("read header: %w", err)
		}
		if line == "" && err == io.EOF {
			return &ParseError{Line: rdr.lineNumber, Message: "no #CHROM header line found"}
		}
		rdr.lineNumber++
		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "##") {
			continue
		}
		if strings.HasPrefix(line, "#CHROM") {
			fields := strings.Split(line, "\t")
			var allNames []string
			if len(fields) > 9 {
				allNames = fields[9:]
			}
			rdr.setSamples(allNames, excluded)
			return nil
		}
		return &ParseError{Line: rdr.lineNumber, Message: "expected #CHROM header line"}
	}
}

func (rdr *Reader) setSamples(allNames []string, excluded map[string]struct{}) {
	if excluded == nil {
		rdr.sampleNames = allNames
		rdr.keepCols = nil
		return
	}
	keep := make([]int, 0, len(allNames))
	names := make([]string, 0, len(allNames))
	for i, name := range allNames {
		if _, drop := excluded[name]; drop {
			continue
		}
		keep = append(keep, i)
		names = append(names, name)
	}
	rdr.sampleNames = names
	rdr.keepCols = keep
}

// SampleNames returns the reader's (possibly exclusion-filtered) sample
// identifiers, in VCF column order.
func (rdr *Reader) SampleNames() []string {
	return rdr.sampleNames
}

// Next returns the next record inside the reader's chromosome interval (if
// any), or (nil, nil, nil) at EOF.
func (rdr *Reader) Next() (*marker.Marker, *genotype.Record, error) {
	for {
		line, err := rdr.r.ReadString('\n')
		if err != nil {
			if err == io.EOF && line == "" {
				return nil, nil, nil
			}
			if err != io.EOF {
				return nil, nil, fmt.Errorf("read vcf line: %w", err)
			}
		}
		rdr.lineNumber++
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}

		m, rec, err := rdr.parseLine(line)
		if err != nil {
			return nil, nil, err
		}
		if rdr.chromInterval != nil && !rdr.chromInterval.Contains(m.Chrom, m.Pos, m.End) {
			continue
		}
		return m, rec, nil
	}
}

func (rdr *Reader) parseLine(line string) (*marker.Marker, *genotype.Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, nil, &ParseError{Line: rdr.lineNumber, Message: fmt.Sprintf("expected at least 8 columns, found %d", len(fields))}
	}

	chrom := fields[0]
	if rdr.registry != nil {
		chrom = rdr.registry.Intern(chrom)
	}
	pos, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, nil, &ParseError{Line: rdr.lineNumber, Message: fmt.Sprintf("invalid position: %s", fields[1])}
	}

	var ids []string
	if fields[2] != "." && fields[2] != "" {
		ids = strings.Split(fields[2], ";")
	}

	alleles := append([]string{fields[3]}, strings.Split(fields[4], ",")...)

	end := -1
	for _, kv := range strings.Split(fields[7], ";") {
		if strings.HasPrefix(kv, "END=") {
			if v, err := strconv.Atoi(kv[len("END="):]); err == nil {
				end = v
			}
		}
	}

	m, err := marker.New(chrom, pos, ids, alleles, end)
	if err != nil {
		return nil, nil, &ParseError{Line: rdr.lineNumber, Message: err.Error()}
	}

	var haps [][2]int
	var phased []bool
	if len(fields) > 9 {
		haps, phased, err = rdr.parseGenotypes(fields[8], fields[9:])
		if err != nil {
			return nil, nil, err
		}
	}
	rec, err := genotype.NewRecord(m, haps, phased)
	if err != nil {
		return nil, nil, &ParseError{Line: rdr.lineNumber, Message: err.Error()}
	}
	return m, rec, nil
}

func (rdr *Reader) parseGenotypes(format string, sampleFields []string) ([][2]int, []bool, error) {
	gtIndex := 0
	for i, key := range strings.Split(format, ":") {
		if key == "GT" {
			gtIndex = i
			break
		}
	}

	cols := rdr.keepCols
	if cols == nil {
		cols = make([]int, len(sampleFields))
		for i := range cols {
			cols[i] = i
		}
	}

	haps := make([][2]int, len(cols))
	phased := make([]bool, len(cols))
	for i, col := range cols {
		if col >= len(sampleFields) {
			return nil, nil, &ParseError{Line: rdr.lineNumber, Message: "sample column missing"}
		}
		subfields := strings.Split(sampleFields[col], ":")
		if gtIndex >= len(subfields) {
			return nil, nil, &ParseError{Line: rdr.lineNumber, Message: "missing GT subfield"}
		}
		a1, a2, isPhased, err := parseGT(subfields[gtIndex])
		if err != nil {
			return nil, nil, &ParseError{Line: rdr.lineNumber, Message: err.Error()}
		}
		haps[i] = [2]int{a1, a2}
		phased[i] = isPhased
	}
	return haps, phased, nil
}

func parseGT(gt string) (a1, a2 int, phased bool, err error) {
	sep := "/"
	phased = false
	if strings.Contains(gt, "|") {
		sep = "|"
		phased = true
	}
	parts := strings.SplitN(gt, sep, 2)
	if len(parts) != 2 {
		return 0, 0, false, fmt.Errorf("malformed GT %q", gt)
	}
	a1, err = parseAllele(parts[0])
	if err != nil {
		return 0, 0, false, err
	}
	a2, err = parseAllele(parts[1])
	if err != nil {
		return 0, 0, false, err
	}
	return a1, a2, phased, nil
}

func parseAllele(s string) (int, error) {
	if s == "." {
		return genotype.MissingAllele, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid allele index %q", s)
	}
	return v, nil
}

// LineNumber returns the current 1-based line number.
func (rdr *Reader) LineNumber() int {
	return rdr.lineNumber
}

// Close closes the reader's file handle and, if the input was gzipped,
// its decompressor.
func (rdr *Reader) Close() error {
	if rdr.gz != nil {
		rdr.gz.Close()
	}
	rdr.closeFile()
	return nil
}
