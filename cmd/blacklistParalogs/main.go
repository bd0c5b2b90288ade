package main

import (
	"flag"
	"log"
	"os"

	"HDplot/pkg/bias"
	"HDplot/pkg/paralog"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/liserjrqlxue/version"
)

var defaults = paralog.DefaultThresholds()

// flag
var (
	input = flag.String(
		"i",
		"",
		"input bias table, the .depthsBias file produced by HDplot",
	)
	maxH = flag.Float64(
		"maxH",
		defaults.MaxHetPerc,
		"maximum proportion of heterozygotes in a locus, from McKinney et al. 2016",
	)
	minN = flag.Int(
		"minN",
		defaults.MinSamples,
		"minimum number of samples in locus",
	)
	minD = flag.Float64(
		"minD",
		defaults.MinZ,
		"lower limit of read ratio deviation (D), from McKinney et al. 2016",
	)
	maxD = flag.Float64(
		"maxD",
		defaults.MaxZ,
		"upper limit of read ratio deviation (D), from McKinney et al. 2016",
	)
	config = flag.String(
		"config",
		"",
		"YAML thresholds file with keys maxH, minN, minD, maxD; explicit flags win",
	)
	xlsxPath = flag.String(
		"xlsx",
		"",
		"optional Excel summary of both lists",
	)
)

// thresholds layers explicitly set flags over the config file over defaults.
func thresholds() paralog.Thresholds {
	t := defaults
	if *config != "" {
		t = simpleUtil.HandleError(paralog.LoadThresholds(*config))
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "maxH":
			t.MaxHetPerc = *maxH
		case "minN":
			t.MinSamples = *minN
		case "minD":
			t.MinZ = *minD
		case "maxD":
			t.MaxZ = *maxD
		}
	})
	return t
}

func main() {
	version.LogVersion()
	flag.Parse()
	if *input == "" {
		flag.PrintDefaults()
		log.Fatal("-i is required")
	}

	var t = thresholds()
	log.Println(t)

	in := simpleUtil.HandleError(os.Open(*input))
	rows := simpleUtil.HandleError(bias.ReadTable(in))
	simpleUtil.CheckErr(in.Close())

	lists := paralog.Partition(rows, t)
	blacklist, whitelist := lists.Write(bias.OutputPrefix(*input))
	log.Printf("%d loci written to blacklist of paralogs %s", len(lists.Paralogs), blacklist)
	log.Printf("%d loci written to whitelist of singletons %s", len(lists.Singletons), whitelist)

	if *xlsxPath != "" {
		WriteSummary(*xlsxPath, t, lists)
	}
}
