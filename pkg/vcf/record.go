package vcf

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Record is the subset of a VCF data line HDplot reads.
type Record struct {
	Chrom     string
	Pos       int
	ID        string
	Ref       string
	Alt       string
	Info      string
	Genotypes []string
}

func ParseRecord(line string) (*Record, error) {
	tabs := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(tabs) < GenotypeStart {
		return nil, errors.Wrapf(ErrMalformedRecord, "%d columns, want at least %d", len(tabs), GenotypeStart)
	}
	pos, err := strconv.Atoi(tabs[1])
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "position %q", tabs[1])
	}
	return &Record{
		Chrom:     tabs[0],
		Pos:       pos,
		ID:        tabs[2],
		Ref:       tabs[3],
		Alt:       tabs[4],
		Info:      tabs[InfoColumn],
		Genotypes: tabs[GenotypeStart:],
	}, nil
}

// NumSamples is the NS= count of the INFO field: the individuals genotyped
// at this site, not the roster length.
func (r *Record) NumSamples() (int, error) {
	field, _, _ := strings.Cut(r.Info, ";")
	if !strings.HasPrefix(field, SamplePrefix) {
		return 0, errors.Wrapf(ErrInfoField, "%q", r.Info)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(field, SamplePrefix))
	if err != nil {
		return 0, errors.Wrapf(ErrInfoField, "%q", r.Info)
	}
	return n, nil
}
