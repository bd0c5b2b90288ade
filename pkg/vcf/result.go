package vcf

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// LocusRow is one line of the depth table, in bias.DepthColumns order.
type LocusRow struct {
	Contig     string
	Pos        int
	LocusID    string
	DepthA     int
	DepthB     int
	Ratio      float64
	NumHets    int
	NumSamples int
}

func (r *LocusRow) String() string {
	return fmt.Sprintf("%s\t%d\t%s\t%d\t%d\t%s\t%d\t%d",
		r.Contig, r.Pos, r.LocusID, r.DepthA, r.DepthB,
		strconv.FormatFloat(r.Ratio, 'g', -1, 64),
		r.NumHets, r.NumSamples)
}

// Aggregate sums the heterozygote allele depths of one record across
// individuals. It returns a nil row when the summed depth is zero.
func Aggregate(rec *Record, ext Extractor, individuals []string) (*LocusRow, error) {
	if len(rec.Genotypes) > len(individuals) {
		return nil, errors.Wrapf(ErrMalformedRecord, "%d genotypes for %d individuals", len(rec.Genotypes), len(individuals))
	}
	numSamples, err := rec.NumSamples()
	if err != nil {
		return nil, err
	}

	var (
		depthA = make(map[string]int)
		depthB = make(map[string]int)
	)
	for i, genotype := range rec.Genotypes {
		a, b, ok, err := ext.Depths(rec, genotype)
		if err != nil {
			return nil, errors.Wrapf(err, "individual %s", individuals[i])
		}
		if !ok {
			continue
		}
		depthA[individuals[i]] = a
		depthB[individuals[i]] = b
	}

	sumA := lo.Sum(lo.Values(depthA))
	sumB := lo.Sum(lo.Values(depthB))
	if sumA+sumB <= 0 {
		return nil, nil
	}
	return &LocusRow{
		Contig:     rec.Chrom,
		Pos:        rec.Pos,
		LocusID:    ext.LocusID(rec),
		DepthA:     sumA,
		DepthB:     sumB,
		Ratio:      float64(sumA) / float64(sumA+sumB),
		NumHets:    len(depthB),
		NumSamples: numSamples,
	}, nil
}
