package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/salwon/segyio/constants"
	"github.com/salwon/segyio/model"
	"github.com/salwon/segyio/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report",
	Long:  `Creates a report over the persisted indexes`,
	Run: func(cmd *cobra.Command, args []string) {
		report()
	},
}

type indexesReport struct {
	numFiles      int64
	numShots      int64
	numBytes      int64
	tracesPerShot []int64
}

func analyzeIndexes() indexesReport {
	var report indexesReport

	files, err := os.ReadDir(constants.GetIndexDir())
	if err != nil {
		panic("Could not read dir because: " + err.Error())
	}

	r, _ := regexp.Compile("^[0-9a-fA-F]{8}-([0-9a-fA-F]{4}-){3}[0-9a-fA-F]{12}.dat$")
	for _, file := range files {
		filename := file.Name()
		if r.MatchString(filename) {
			report.numFiles += 1
			path := filepath.Join(constants.GetIndexDir(), filename)
			idx := util.ReadBinaryOrPanic[model.ShotIndex](path)

			report.numShots += int64(idx.NumShots)
			for _, record := range idx.Records {
				report.tracesPerShot = append(report.tracesPerShot, int64(idx.Shots[record].NumTraces))
			}

			info, err := os.Stat(path)
			if err != nil {
				panic("Could not get file stats")
			}
			report.numBytes += info.Size()
		}
	}

	return report
}

func report() {
	indexesReport := analyzeIndexes()
	fmt.Printf("indexesReport.numFiles: %v\n", indexesReport.numFiles)
	fmt.Printf("indexesReport.numShots: %v\n", indexesReport.numShots)
	fmt.Printf("indexesReport.numBytes: %v\n", indexesReport.numBytes)
	numTraces := util.Sum(indexesReport.tracesPerShot)
	fmt.Printf("numTraces across all indexes: %v\n", numTraces)
	if indexesReport.numShots > 0 {
		fmt.Printf("avg traces per shot: %v\n", float32(numTraces)/float32(indexesReport.numShots))
	}
}
