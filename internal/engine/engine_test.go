package engine

import (
	"bufio"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/biostrand/gtconform/internal/window"
)

func writeVCF(t *testing.T, path, body string) {
	t.Helper()
	header := "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\tS2\tS3\n"
	require.NoError(t, os.WriteFile(path, []byte(header+body), 0o644))
}

func readGzipLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()
	var lines []string
	sc := bufio.NewScanner(gz)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.NoError(t, sc.Err())
	return lines
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var lines []string
	for _, l := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		lines = append(lines, l)
	}
	return lines
}

func TestRunTrivialMatchEmitsIdenticalRecord(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.vcf")
	gt := filepath.Join(dir, "gt.vcf")
	out := filepath.Join(dir, "out")

	body := "1\t100\trs1\tA\tG\t.\tPASS\t.\tGT\t1|1\t1|1\t1|1\n"
	writeVCF(t, ref, body)
	writeVCF(t, gt, body)

	p := Params{Ref: ref, Gt: gt, Chrom: "1", Out: out, MatchID: true}
	require.NoError(t, Run(p, window.DefaultOptions(), 0, zap.NewNop()))

	vcfLines := readGzipLines(t, out+".vcf.gz")
	var dataLine string
	for _, l := range vcfLines {
		if !strings.HasPrefix(l, "#") && l != "" {
			dataLine = l
		}
	}
	require.NotEmpty(t, dataLine, "no data line in %s.vcf.gz, lines=%v", out, vcfLines)
	assert.True(t, strings.HasPrefix(dataLine, "1\t100\trs1\tA\tG\t.\tPASS\t.\tGT\t1|1\t1|1\t1|1"),
		"vcf data line = %q", dataLine)

	logLines := readLines(t, out+".log")
	require.Len(t, logLines, 2, "want header + 1 row")
	fields := strings.Split(logLines[1], "\t")
	assert.Equal(t, "PASS", fields[8])
	assert.Equal(t, "SAME_STRAND", fields[9])
}

func TestRunInconsistentAlleleIsRejectedAndUnwritten(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.vcf")
	gt := filepath.Join(dir, "gt.vcf")
	out := filepath.Join(dir, "out")

	writeVCF(t, ref, "1\t100\trs1\tA\tG\t.\tPASS\t.\tGT\t0|1\t0|1\t0|1\n")
	writeVCF(t, gt, "1\t100\trs1\tA\tC\t.\tPASS\t.\tGT\t0|1\t0|1\t0|1\n")

	p := Params{Ref: ref, Gt: gt, Chrom: "1", Out: out, MatchID: true}
	require.NoError(t, Run(p, window.DefaultOptions(), 0, zap.NewNop()))

	vcfLines := readGzipLines(t, out+".vcf.gz")
	for _, l := range vcfLines {
		if !strings.HasPrefix(l, "#") && l != "" {
			t.Errorf("unexpected data line in output for inconsistent-allele marker: %q", l)
		}
	}

	logLines := readLines(t, out+".log")
	require.Len(t, logLines, 2, "want header + 1 row")
	assert.Contains(t, logLines[1], "NOT_IN_REFERENCE")
}

func TestRunRejectsOutputPathCollidingWithInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	ref := out + ".vcf.gz"
	writeVCF(t, ref, "1\t100\trs1\tA\tG\t.\tPASS\t.\tGT\t0|1\n")

	p := Params{Ref: ref, Gt: ref, Chrom: "1", Out: out}
	err := Run(p, window.DefaultOptions(), 0, zap.NewNop())
	assert.Error(t, err)
}
