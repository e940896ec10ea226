package cmd

import (
	"fmt"

	"github.com/salwon/segyio/model"
	"github.com/salwon/segyio/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspects an index",
	Long:  `Inspects a persisted shot index`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	idx := util.ReadBinaryOrPanic[model.ShotIndex](path)
	fmt.Printf("file: %v\n", idx.Filename)
	fmt.Printf("shots: %v samples: %v interval: %vms nominal: %v\n",
		idx.NumShots, idx.NumSamples, idx.SampleInterval, idx.TracesPerShotNominal)
	for _, record := range idx.Records {
		d := idx.Shots[record]
		fmt.Printf("record: %v position: %v traces: %v source: (%v, %v)\n",
			record, d.TracePosition, d.NumTraces, d.SourceXY.X, d.SourceXY.Y)
	}
}
