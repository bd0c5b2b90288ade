package vcf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Extractor holds the dialect-specific rules for one record: how its locus
// ID is built and which allele depths a genotype contributes.
type Extractor interface {
	LocusID(r *Record) string
	// Depths returns the two allele depths of a heterozygous call. ok is
	// false when the genotype does not count: not heterozygous, depth
	// missing, or a record the dialect does not extract from.
	Depths(r *Record, genotype string) (a, b int, ok bool, err error)
}

// hetDepth returns the depth subfield of a heterozygous call spelled as one
// of hets, if present.
func hetDepth(genotype string, hets []string) (string, bool) {
	fields := strings.Split(genotype, ":")
	if !lo.Contains(hets, fields[0]) {
		return "", false
	}
	if len(fields) <= DepthField || fields[DepthField] == "" || fields[DepthField] == Missing {
		return "", false
	}
	return fields[DepthField], true
}

func atoiCounts(counts []string, idx ...int) ([]int, error) {
	values := make([]int, len(idx))
	for i, j := range idx {
		v, err := strconv.Atoi(counts[j])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedRecord, "depth %q", strings.Join(counts, ","))
		}
		values[i] = v
	}
	return values, nil
}

// stacksExtractor reads AD-style "a,b" depth subfields.
type stacksExtractor struct{}

func (stacksExtractor) LocusID(r *Record) string {
	if r.ID != Missing {
		return r.ID
	}
	// Stacks writes 1-based POS but names loci by the 0-based column
	return fmt.Sprintf("%s_%d", r.Chrom, r.Pos-1)
}

func (stacksExtractor) Depths(_ *Record, genotype string) (a, b int, ok bool, err error) {
	depth, ok := hetDepth(genotype, StacksHets)
	if !ok {
		return
	}
	counts := strings.Split(depth, ",")
	if len(counts) < 2 {
		return 0, 0, false, errors.Wrapf(ErrMalformedRecord, "depth %q", depth)
	}
	values, err := atoiCounts(counts, 0, 1)
	if err != nil {
		return 0, 0, false, err
	}
	return values[0], values[1], true, nil
}

// ipyradExtractor reads CATG depth subfields of biallelic records.
type ipyradExtractor struct{}

func (ipyradExtractor) LocusID(r *Record) string {
	return fmt.Sprintf("%s_%d", strings.ReplaceAll(r.Chrom, "_", ""), r.Pos)
}

func (ipyradExtractor) Depths(r *Record, genotype string) (a, b int, ok bool, err error) {
	if len(r.Alt) != 1 || r.Ref == "" {
		return
	}
	refIdx, refOk := CATGIndex[r.Ref[0]]
	altIdx, altOk := CATGIndex[r.Alt[0]]
	if !refOk || !altOk {
		return
	}
	depth, ok := hetDepth(genotype, IpyradHets)
	if !ok {
		return
	}
	counts := strings.Split(depth, ",")
	if len(counts) < len(CATGIndex) {
		return 0, 0, false, errors.Wrapf(ErrMalformedRecord, "CATG depth %q", depth)
	}
	values, err := atoiCounts(counts, refIdx, altIdx)
	if err != nil {
		return 0, 0, false, err
	}
	return values[0], values[1], true, nil
}
