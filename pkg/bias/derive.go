package bias

import (
	"bytes"
	"io"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat/distuv"
)

// LoadDepths reads the headerless depth table into a dataframe named by
// DepthColumns.
func LoadDepths(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(
		r,
		dataframe.WithDelimiter('\t'),
		dataframe.HasHeader(false),
		dataframe.Names(DepthColumns...),
		dataframe.WithTypes(stringColumns),
	)
	if df.Err != nil {
		return df, errors.Wrap(df.Err, "load depth table")
	}
	return df, nil
}

// Derive appends DerivedColumns. The expected standard deviation is that of
// a Binomial(total_depth, 0.5): a true heterozygote splits its reads evenly.
func Derive(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	var (
		n       = df.Nrow()
		depthA  = df.Col(DepthA).Float()
		depthB  = df.Col(DepthB).Float()
		hets    = df.Col(NumHets).Float()
		samples = df.Col(NumSamples).Float()

		total   = make([]int, n)
		perHet  = make([]float64, n)
		hetPerc = make([]float64, n)
		std     = make([]float64, n)
		z       = make([]float64, n)
	)
	for i := 0; i < n; i++ {
		depth := depthA[i] + depthB[i]
		total[i] = int(depth)
		perHet[i] = depth / hets[i]
		hetPerc[i] = hets[i] / samples[i]
		std[i] = distuv.Binomial{N: depth, P: 0.5}.StdDev()
		z[i] = -(depth/2 - depthA[i]) / std[i]
	}

	df = df.Mutate(series.New(total, series.Int, TotalDepth)).
		Mutate(series.New(perHet, series.Float, DepthPerHet)).
		Mutate(series.New(hetPerc, series.Float, HetPerc)).
		Mutate(series.New(std, series.Float, Std)).
		Mutate(series.New(z, series.Float, Z))
	if df.Err != nil {
		return df, errors.Wrap(df.Err, "derive bias columns")
	}
	return df, nil
}

func formatColumn(s series.Series) []string {
	if s.Type() != series.Float {
		return s.Records()
	}
	return lo.Map(s.Float(), func(v float64, _ int) string {
		return strconv.FormatFloat(v, 'g', -1, 64)
	})
}

// WriteTable writes df tab-separated with a header row and no index column.
func WriteTable(w io.Writer, df dataframe.DataFrame) {
	var (
		names   = df.Names()
		columns = lo.Map(names, func(name string, _ int) []string {
			return formatColumn(df.Col(name))
		})
	)
	fmtUtil.FprintStringArray(w, names, "\t")
	for row := 0; row < df.Nrow(); row++ {
		fmtUtil.FprintStringArray(w, lo.Map(columns, func(col []string, _ int) string {
			return col[row]
		}), "\t")
	}
}

// Build turns a depth table into the final bias table and returns its row
// count. An empty depth table gives a header-only bias table.
func Build(depths io.Reader, w io.Writer) (int, error) {
	data, err := io.ReadAll(depths)
	if err != nil {
		return 0, errors.Wrap(err, "read depth table")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		fmtUtil.FprintStringArray(w, BiasColumns, "\t")
		return 0, nil
	}
	df, err := LoadDepths(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	df, err = Derive(df)
	if err != nil {
		return 0, err
	}
	WriteTable(w, df)
	return df.Nrow(), nil
}
