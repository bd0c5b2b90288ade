package main

import (
	"log"

	"HDplot/pkg/paralog"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/xuri/excelize/v2"
)

func CoordinatesToCellName(col int, row int, abs ...bool) string {
	return simpleUtil.HandleError(
		excelize.CoordinatesToCellName(
			col, row, abs...,
		),
	)
}

func addListSheet(xlsx *excelize.File, sheet, title string, names []string) {
	simpleUtil.HandleError(xlsx.NewSheet(sheet))
	simpleUtil.CheckErr(xlsx.SetCellStr(sheet, CoordinatesToCellName(1, 1), title))
	for i, name := range names {
		simpleUtil.CheckErr(xlsx.SetCellStr(sheet, CoordinatesToCellName(1, i+2), name))
	}
}

// WriteSummary saves both lists and the thresholds behind them as one workbook.
func WriteSummary(path string, t paralog.Thresholds, lists *paralog.Lists) {
	var (
		xlsx  = excelize.NewFile()
		sheet = "thresholds"
	)
	addListSheet(xlsx, "blacklist", "paralogs", lists.Paralogs)
	addListSheet(xlsx, "whitelist", "singletons", lists.Singletons)

	simpleUtil.HandleError(xlsx.NewSheet(sheet))
	simpleUtil.CheckErr(xlsx.SetSheetRow(sheet, "A1", &[]any{"maxH", t.MaxHetPerc}))
	simpleUtil.CheckErr(xlsx.SetSheetRow(sheet, "A2", &[]any{"minN", t.MinSamples}))
	simpleUtil.CheckErr(xlsx.SetSheetRow(sheet, "A3", &[]any{"minD", t.MinZ}))
	simpleUtil.CheckErr(xlsx.SetSheetRow(sheet, "A4", &[]any{"maxD", t.MaxZ}))
	simpleUtil.CheckErr(xlsx.SetSheetRow(sheet, "A5", &[]any{"paralogs", len(lists.Paralogs)}))
	simpleUtil.CheckErr(xlsx.SetSheetRow(sheet, "A6", &[]any{"singletons", len(lists.Singletons)}))

	simpleUtil.CheckErr(xlsx.DeleteSheet("Sheet1"))
	log.Printf("SaveAs(%s)", path)
	simpleUtil.CheckErr(xlsx.SaveAs(path))
}
