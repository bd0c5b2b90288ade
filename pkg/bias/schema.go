// Package bias holds the named-column schema shared by the depth table and
// the bias table, and derives the HDplot statistics between them.
package bias

import (
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/series"
)

const (
	Contig      = "contig"
	Pos         = "pos"
	LocusID     = "locus_ID"
	DepthA      = "depth_a"
	DepthB      = "depth_b"
	Ratio       = "ratio"
	NumHets     = "num_hets"
	NumSamples  = "num_samples"
	TotalDepth  = "total_depth"
	DepthPerHet = "depth_per_het"
	HetPerc     = "hetPerc"
	Std         = "std"
	Z           = "z"
)

var (
	// DepthColumns is the column order of the headerless depth table.
	DepthColumns = []string{Contig, Pos, LocusID, DepthA, DepthB, Ratio, NumHets, NumSamples}
	// DerivedColumns are appended by Derive.
	DerivedColumns = []string{TotalDepth, DepthPerHet, HetPerc, Std, Z}
	BiasColumns    = append(append([]string{}, DepthColumns...), DerivedColumns...)

	// contigs and locus IDs are often numeric, never let them be parsed as such
	stringColumns = map[string]series.Type{
		Contig:  series.String,
		LocusID: series.String,
	}
)

// OutputPrefix strips everything from the first dot of the file name, so
// pop.vcf.gz and pop.depthsBias both give pop.
func OutputPrefix(path string) string {
	dir, base := filepath.Split(path)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return dir + base
}
