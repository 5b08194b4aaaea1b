// Package emit renders a reconciliation run's output: the conformed VCF
// rewrite of the target file, and the per-variant verdict log.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/biostrand/gtconform/internal/genotype"
)

const vcfHeaderPrefix = "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT"

// VCFWriter writes the conformed VCF output: meta-information lines, the
// #CHROM header, and one record per surviving variant, with genotypes
// renumbered into the reference marker's allele indices.
type VCFWriter struct {
	w *bufio.Writer
}

// NewVCFWriter wraps w for buffered VCF output.
func NewVCFWriter(w io.Writer) *VCFWriter {
	return &VCFWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the VCF meta-information lines and #CHROM header line,
// naming source as the program and version that produced the file.
func (vw *VCFWriter) WriteHeader(sampleIDs []string, source string) error {
	fmt.Fprintln(vw.w, "##fileformat=VCFv4.2")
	fmt.Fprintf(vw.w, "##filedate=%s\n", time.Now().Format("20060102"))
	fmt.Fprintf(vw.w, "##source=\"%s\"\n", source)
	fmt.Fprintln(vw.w, `##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">`)
	vw.w.WriteString(vcfHeaderPrefix)
	for _, id := range sampleIDs {
		vw.w.WriteByte('\t')
		vw.w.WriteString(id)
	}
	vw.w.WriteByte('\n')
	return vw.w.Flush()
}

// WriteRecord writes one VCF data line for dose. Choosing between the
// unflipped and flipped dose view is the caller's responsibility: dose
// itself already reflects the orientation to emit.
func (vw *VCFWriter) WriteRecord(dose *genotype.Dose) error {
	m := dose.RefMarker
	fmt.Fprintf(vw.w, "%s\t.\tPASS", m.String())
	if m.End != -1 {
		fmt.Fprintf(vw.w, "\tEND=%d", m.End)
	} else {
		vw.w.WriteString("\t.")
	}
	vw.w.WriteString("\tGT")

	unfilt := dose.Unfiltered()
	alleleMap := dose.AlleleMap()
	for i := 0; i < unfilt.NSamples(); i++ {
		sep := byte('/')
		if unfilt.IsPhased(i) {
			sep = '|'
		}
		vw.w.WriteByte('\t')
		vw.w.WriteString(renderAllele(unfilt.Allele1(i), alleleMap))
		vw.w.WriteByte(sep)
		vw.w.WriteString(renderAllele(unfilt.Allele2(i), alleleMap))
	}
	vw.w.WriteByte('\n')
	return nil
}

// Flush flushes any buffered output.
func (vw *VCFWriter) Flush() error {
	return vw.w.Flush()
}

func renderAllele(a int, alleleMap []int) string {
	if a == genotype.MissingAllele {
		return "."
	}
	return strconv.Itoa(alleleMap[a])
}
