package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParamsRequiredFields(t *testing.T) {
	p, err := ParseParams([]string{"ref=r.vcf", "gt=g.vcf", "chrom=1:100-200", "out=prefix"})
	require.NoError(t, err)
	assert.Equal(t, "r.vcf", p.Ref)
	assert.Equal(t, "g.vcf", p.Gt)
	assert.Equal(t, "1:100-200", p.Chrom)
	assert.Equal(t, "prefix", p.Out)
	assert.True(t, p.MatchID, "MatchID default should be true")
	assert.False(t, p.Strict, "Strict default should be false")
}

func TestParseParamsMissingRequiredField(t *testing.T) {
	_, err := ParseParams([]string{"ref=r.vcf", "gt=g.vcf", "out=prefix"})
	assert.Error(t, err)
}

func TestParseParamsUnknownKey(t *testing.T) {
	_, err := ParseParams([]string{"ref=r.vcf", "gt=g.vcf", "chrom=1", "out=prefix", "bogus=1"})
	assert.Error(t, err)
}

func TestParseParamsMatchCaseInsensitive(t *testing.T) {
	p, err := ParseParams([]string{"ref=r.vcf", "gt=g.vcf", "chrom=1", "out=o", "match=pos"})
	require.NoError(t, err)
	assert.False(t, p.MatchID, "match=pos should set MatchID=false")
}

func TestParseParamsMalformedChrom(t *testing.T) {
	_, err := ParseParams([]string{"ref=r.vcf", "gt=g.vcf", "chrom=1:200-100", "out=o"})
	assert.Error(t, err)
}

func TestLooksLikeParams(t *testing.T) {
	assert.True(t, LooksLikeParams([]string{"ref=r.vcf", "gt=g.vcf"}))
	assert.False(t, LooksLikeParams([]string{"version"}))
	assert.False(t, LooksLikeParams(nil))
}
