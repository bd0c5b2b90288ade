// Package paralog partitions the loci of a bias table into a blacklist of
// likely paralogs and a whitelist of singletons, after McKinney et al. 2017.
package paralog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"HDplot/pkg/bias"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v2"
)

// Thresholds bounds are inclusive.
type Thresholds struct {
	MaxHetPerc float64 `yaml:"maxH"`
	MinSamples int     `yaml:"minN"`
	MinZ       float64 `yaml:"minD"`
	MaxZ       float64 `yaml:"maxD"`
}

// DefaultThresholds are the McKinney et al. 2016 limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxHetPerc: 0.6,
		MinSamples: 1,
		MinZ:       -7,
		MaxZ:       7,
	}
}

// LoadThresholds reads a YAML file over the defaults; absent keys keep their
// default value.
func LoadThresholds(path string) (Thresholds, error) {
	t := DefaultThresholds()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, errors.Wrapf(err, "read thresholds %s", path)
	}
	if err := yaml.UnmarshalStrict(data, &t); err != nil {
		return t, errors.Wrapf(err, "parse thresholds %s", path)
	}
	return t, nil
}

func (t Thresholds) String() string {
	return fmt.Sprintf(
		"Retaining loci with at least %d sample and with proportion of heterozygotes ≤ %g and D between %g and %g",
		t.MinSamples, t.MaxHetPerc, t.MinZ, t.MaxZ,
	)
}

type Verdict int

const (
	Singleton Verdict = iota
	Paralog
)

func (v Verdict) String() string {
	if v == Paralog {
		return "paralog"
	}
	return "singleton"
}

// Classify applies the thresholds in order: sample count, heterozygote
// proportion, then read ratio deviation. NaN statistics fail their test.
func (t Thresholds) Classify(row bias.Row) Verdict {
	switch {
	case row.NumSamples < t.MinSamples:
		return Paralog
	case !(row.HetPerc <= t.MaxHetPerc):
		return Paralog
	case !(row.Z >= t.MinZ && row.Z <= t.MaxZ):
		return Paralog
	}
	return Singleton
}

// LocusName is the locus ID up to its first underscore; all SNPs of one
// physical locus share it.
func LocusName(locusID string) string {
	name, _, _ := strings.Cut(locusID, "_")
	return name
}

// Lists holds sorted, duplicate-free locus names.
type Lists struct {
	Paralogs   []string
	Singletons []string
}

// Partition classifies every row and reconciles rows of the same locus: one
// paralog row puts the locus on the blacklist only.
func Partition(rows []bias.Row, t Thresholds) *Lists {
	var paralogs, singletons []string
	for _, row := range rows {
		name := LocusName(row.LocusID)
		if t.Classify(row) == Paralog {
			paralogs = append(paralogs, name)
		} else {
			singletons = append(singletons, name)
		}
	}
	paralogs = lo.Uniq(paralogs)
	singletons, _ = lo.Difference(lo.Uniq(singletons), paralogs)

	sort.Strings(paralogs)
	sort.Strings(singletons)
	return &Lists{
		Paralogs:   paralogs,
		Singletons: singletons,
	}
}
