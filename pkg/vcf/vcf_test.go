package vcf

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stacksHeader = "##fileformat=VCFv4.2\n" +
	"##source=\"Stacks v2.64\"\n" +
	"##INFO=<ID=NS,Number=1,Type=Integer>\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\ts1\ts2\ts3\ts4\n"

const ipyradHeader = "##fileformat=VCFv4.0\n" +
	"##source=ipyrad_v.0.9.92\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\ts1\ts2\n"

func line(fields ...string) string {
	return strings.Join(fields, "\t") + "\n"
}

func TestDetectDialect(t *testing.T) {
	for source, want := range map[string]Dialect{
		`"Stacks v2.64"`:   Stacks,
		"Stacks v1.48":     Stacks,
		"ipyrad_v.0.9.92":  Ipyrad,
		"freeBayes v1.3.6": Unknown,
		"":                 Unknown,
	} {
		assert.Equal(t, want, DetectDialect(source), source)
	}

	_, err := Unknown.Extractor()
	assert.ErrorIs(t, err, ErrUnknownDialect)
}

func TestParseRecord(t *testing.T) {
	rec, err := ParseRecord(line("chr1", "101", ".", "A", "G", ".", "PASS", "NS=10;AF=0.2", "GT:DP:AD", "0/1:10:5,5"))
	require.NoError(t, err)
	assert.Equal(t, "chr1", rec.Chrom)
	assert.Equal(t, 101, rec.Pos)
	assert.Equal(t, []string{"0/1:10:5,5"}, rec.Genotypes)

	n, err := rec.NumSamples()
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	_, err = ParseRecord(line("chr1", "x", ".", "A", "G", ".", "PASS", "NS=1", "GT"))
	assert.ErrorIs(t, err, ErrMalformedRecord)
	_, err = ParseRecord(line("chr1", "1", "."))
	assert.ErrorIs(t, err, ErrMalformedRecord)

	for _, info := range []string{"AF=0.2;NS=3", "NS=three", ""} {
		rec.Info = info
		_, err = rec.NumSamples()
		assert.ErrorIs(t, err, ErrInfoField, info)
	}
}

func TestStacksLocusID(t *testing.T) {
	ext, err := Stacks.Extractor()
	require.NoError(t, err)
	assert.Equal(t, "chr1_100", ext.LocusID(&Record{Chrom: "chr1", Pos: 101, ID: "."}))
	assert.Equal(t, "123_45", ext.LocusID(&Record{Chrom: "un", Pos: 101, ID: "123_45"}))
}

func TestIpyradLocusID(t *testing.T) {
	ext, err := Ipyrad.Extractor()
	require.NoError(t, err)
	assert.Equal(t, "scaffold12_55", ext.LocusID(&Record{Chrom: "scaffold_12", Pos: 55, ID: "loc1"}))
}

func TestAggregateStacks(t *testing.T) {
	rec, err := ParseRecord(line(
		"chr1", "101", ".", "A", "G", ".", "PASS", "NS=10", "GT:DP:AD",
		"0/1:10:5,5", "1/0:10:3,7", "0/1:10:0,10", "0/0:12:12,0",
	))
	require.NoError(t, err)
	ext, _ := Stacks.Extractor()

	row, err := Aggregate(rec, ext, []string{"s1", "s2", "s3", "s4"})
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "chr1_100", row.LocusID)
	assert.Equal(t, 8, row.DepthA)
	assert.Equal(t, 22, row.DepthB)
	assert.InDelta(t, 8.0/30.0, row.Ratio, 1e-12)
	assert.Equal(t, 3, row.NumHets)
	assert.Equal(t, 10, row.NumSamples)
}

func TestAggregateMissingDepth(t *testing.T) {
	rec, err := ParseRecord(line(
		"chr1", "7", "12_6", "A", "G", ".", "PASS", "NS=4", "GT:DP:AD",
		"0/1:10:.", "0/1", "./.:.:.", "0/1:4:1,3",
	))
	require.NoError(t, err)
	ext, _ := Stacks.Extractor()

	row, err := Aggregate(rec, ext, []string{"s1", "s2", "s3", "s4"})
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, 1, row.NumHets)
	assert.Equal(t, 1, row.DepthA)
	assert.Equal(t, 3, row.DepthB)
}

func TestAggregateZeroDepthDropped(t *testing.T) {
	rec, err := ParseRecord(line(
		"chr1", "7", ".", "A", "G", ".", "PASS", "NS=2", "GT:DP:AD",
		"0/1:0:0,0", "1/1:8:0,8",
	))
	require.NoError(t, err)
	ext, _ := Stacks.Extractor()

	row, err := Aggregate(rec, ext, []string{"s1", "s2"})
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestAggregateIpyrad(t *testing.T) {
	ext, _ := Ipyrad.Extractor()
	individuals := []string{"s1", "s2", "s3"}

	// CATG: ref A is slot 1, alt G is slot 3
	rec, err := ParseRecord(line(
		"locus_7", "55", ".", "A", "G", "13", "PASS", "NS=3;DP=40", "GT:DP:CATG",
		"0/1:10:0,4,0,6", "1,0:12:1,5,0,6", "0/0:9:0,9,0,0",
	))
	require.NoError(t, err)
	row, err := Aggregate(rec, ext, individuals)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "locus7_55", row.LocusID)
	assert.Equal(t, 9, row.DepthA)
	assert.Equal(t, 12, row.DepthB)
	assert.Equal(t, 2, row.NumHets)
	assert.Equal(t, 3, row.NumSamples)

	// multi-allelic records contribute nothing
	rec.Alt = "G,T"
	row, err = Aggregate(rec, ext, individuals)
	require.NoError(t, err)
	assert.Nil(t, row)

	// 1/0 is not an ipyrad heterozygote spelling
	rec, err = ParseRecord(line(
		"locus_7", "56", ".", "C", "T", "13", "PASS", "NS=1", "GT:DP:CATG",
		"1/0:10:4,0,6,0",
	))
	require.NoError(t, err)
	row, err = Aggregate(rec, ext, individuals)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestAggregateErrors(t *testing.T) {
	ext, _ := Stacks.Extractor()

	rec, err := ParseRecord(line("chr1", "7", ".", "A", "G", ".", "PASS", "DP=3", "GT:DP:AD", "0/1:4:1,3"))
	require.NoError(t, err)
	_, err = Aggregate(rec, ext, []string{"s1"})
	assert.ErrorIs(t, err, ErrInfoField)

	rec, err = ParseRecord(line("chr1", "7", ".", "A", "G", ".", "PASS", "NS=1", "GT:DP:AD", "0/1:4:x,3"))
	require.NoError(t, err)
	_, err = Aggregate(rec, ext, []string{"s1"})
	assert.ErrorIs(t, err, ErrMalformedRecord)

	_, err = Aggregate(rec, ext, nil)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestParser(t *testing.T) {
	input := stacksHeader +
		line("chr1", "101", ".", "A", "G", ".", "PASS", "NS=4", "GT:DP:AD", "0/1:10:5,5", "1/0:10:3,7", "0/1:10:0,10", "0/0:4:4,0") +
		line("chr1", "150", ".", "A", "G", ".", "PASS", "NS=4", "GT:DP:AD", "0/0:4:4,0", "0/0:4:4,0", "./.:.:.", "1/1:3:0,3") +
		line("chr1", "160", ".", "A", "G", ".", "PASS", "bad", "GT:DP:AD", "0/1:4:1,3", "0/0:4:4,0", "./.:.:.", "1/1:3:0,3") +
		line("chr2", "9", "3_8", "C", "T", ".", "PASS", "NS=2", "GT:DP:AD", "0/1:4:1,3", "./.:.:.", "./.:.:.", "./.:.:.")

	p := NewParser(strings.NewReader(input))

	row, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, Stacks, p.Dialect)
	assert.Equal(t, 3, p.HeaderLines)
	assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, p.Individuals)
	assert.Equal(t, "chr1\t101\tchr1_100\t8\t22\t0.26666666666666666\t3\t4", row.String())

	_, err = p.Next()
	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 7, lineErr.Line)
	assert.ErrorIs(t, err, ErrInfoField)

	row, err = p.Next()
	require.NoError(t, err)
	assert.Equal(t, "3_8", row.LocusID)
	assert.Equal(t, 1, p.Dropped)

	_, err = p.Next()
	assert.Equal(t, io.EOF, err)
}

func TestParserUnknownDialect(t *testing.T) {
	input := "##fileformat=VCFv4.2\n##source=freeBayes\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\ts1\n" +
		line("chr1", "101", ".", "A", "G", ".", "PASS", "NS=1", "GT:DP:AD", "0/1:10:5,5") +
		line("chr1", "102", ".", "A", "G", ".", "PASS", "NS=1", "GT:DP:AD", "0/1:10:5,5")

	var out bytes.Buffer
	ctx, summary, err := WriteDepths(strings.NewReader(input), &out)
	require.NoError(t, err)
	assert.Equal(t, Unknown, ctx.Dialect)
	assert.Equal(t, 2, summary.Errors)
	assert.Zero(t, summary.Rows)
	assert.Empty(t, out.String())
}

func TestWriteDepthsIpyrad(t *testing.T) {
	input := ipyradHeader +
		line("locus_1", "3", ".", "A", "G", "13", "PASS", "NS=2", "GT:DP:CATG", "0/1:10:0,4,0,6", "0/0:9:0,9,0,0") +
		line("locus_1", "8", ".", "C", "T,G", "13", "PASS", "NS=2", "GT:DP:CATG", "0/1:10:4,0,6,0", "0/0:9:9,0,0,0")

	var out bytes.Buffer
	ctx, summary, err := WriteDepths(strings.NewReader(input), &out)
	require.NoError(t, err)
	assert.Equal(t, Ipyrad, ctx.Dialect)
	assert.Equal(t, &Summary{Rows: 1, Dropped: 1}, summary)
	assert.Equal(t, "locus_1\t3\tlocus1_3\t4\t6\t0.4\t1\t2\n", out.String())
}

func TestOpenGzip(t *testing.T) {
	dir := t.TempDir()
	content := stacksHeader + line("chr1", "101", ".", "A", "G", ".", "PASS", "NS=1", "GT:DP:AD", "0/1:10:5,5", ".", ".", ".")

	plain := filepath.Join(dir, "pop.vcf")
	require.NoError(t, os.WriteFile(plain, []byte(content), 0644))

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	compressed := filepath.Join(dir, "pop.vcf.gz")
	require.NoError(t, os.WriteFile(compressed, buf.Bytes(), 0644))

	for _, path := range []string{plain, compressed} {
		r, err := Open(path)
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		assert.Equal(t, content, string(data), path)
	}

	_, err = Open(filepath.Join(dir, "missing.vcf"))
	assert.Error(t, err)
}
