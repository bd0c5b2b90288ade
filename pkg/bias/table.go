package bias

import (
	"bytes"
	"io"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Row is the part of a bias table row the paralog classifier needs.
type Row struct {
	Contig     string
	LocusID    string
	NumSamples int
	HetPerc    float64
	Z          float64
}

var rowColumns = []string{Contig, LocusID, NumSamples, HetPerc, Z}

// ReadTable reads a bias table with a header row, addressing columns by
// name. Extra columns, such as a leading index, are ignored.
func ReadTable(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read bias table")
	}
	if bytes.Count(bytes.TrimRight(data, "\r\n"), []byte("\n")) == 0 {
		return nil, nil
	}

	df := dataframe.ReadCSV(
		bytes.NewReader(data),
		dataframe.WithDelimiter('\t'),
		dataframe.HasHeader(true),
		dataframe.WithTypes(stringColumns),
	)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "load bias table")
	}
	if missing, _ := lo.Difference(rowColumns, df.Names()); len(missing) > 0 {
		return nil, errors.Errorf("bias table lacks columns %v", missing)
	}

	var (
		contigs = df.Col(Contig).Records()
		ids     = df.Col(LocusID).Records()
		samples = df.Col(NumSamples).Float()
		hetPerc = df.Col(HetPerc).Float()
		z       = df.Col(Z).Float()
		rows    = make([]Row, df.Nrow())
	)
	for i := range rows {
		rows[i] = Row{
			Contig:     contigs[i],
			LocusID:    ids[i],
			NumSamples: int(math.Round(samples[i])),
			HetPerc:    hetPerc[i],
			Z:          z[i],
		}
	}
	return rows, nil
}
