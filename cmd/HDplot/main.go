package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"HDplot/pkg/bias"
	"HDplot/pkg/vcf"

	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/liserjrqlxue/version"
)

// flag
var (
	input = flag.String(
		"i",
		"",
		"input VCF, must have read depth per allele in each individual (Stacks or ipyrad format), .gz allowed",
	)
)

func main() {
	version.LogVersion()
	flag.Parse()
	if *input == "" {
		flag.PrintDefaults()
		log.Fatal("-i is required")
	}

	var (
		prefix     = bias.OutputPrefix(*input)
		depthsPath = prefix + ".depths"
		biasPath   = depthsPath + "Bias"
	)

	// VCF -> heterozygote allele depths per locus
	in := simpleUtil.HandleError(vcf.Open(*input))
	out := osUtil.Create(depthsPath)
	ctx, summary, err := vcf.WriteDepths(in, out)
	simpleUtil.CheckErr(err)
	simpleUtil.CheckErr(out.Close())
	simpleUtil.CheckErr(in.Close())
	slog.Info(
		"depths",
		"dialect", ctx.Dialect,
		"individuals", len(ctx.Individuals),
		"rows", summary.Rows,
		"dropped", summary.Dropped,
		"errors", summary.Errors,
	)
	if ctx.Dialect == vcf.Unknown {
		slog.Error("no rows written", "err", vcf.ErrUnknownDialect)
	}

	// depths -> depth and bias statistics
	depths := simpleUtil.HandleError(os.Open(depthsPath))
	biasFile := osUtil.Create(biasPath)
	rows := simpleUtil.HandleError(bias.Build(depths, biasFile))
	simpleUtil.CheckErr(biasFile.Close())
	simpleUtil.CheckErr(depths.Close())
	log.Printf("%d loci written to %s", rows, biasPath)

	simpleUtil.CheckErr(os.Remove(depthsPath))
}
