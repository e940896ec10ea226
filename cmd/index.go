package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/salwon/segyio/constants"
	"github.com/salwon/segyio/model"
	"github.com/salwon/segyio/shot"
	"github.com/salwon/segyio/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Creates indexes",
	Long:  `Creates a shot index for every SEGY file under DATA_PATH`,
	Run: func(cmd *cobra.Command, args []string) {
		var maxNum int
		if len(args) == 1 {
			arg1, err := strconv.Atoi(args[0])
			if err != nil {
				panic(err)
			}
			maxNum = arg1
		}

		Index(maxNum)
	},
}

// Index builds an index for every segy file under the data dir, persists
// each one under a fresh name and writes the catalog last. maxNum of 0
// means no limit.
func Index(maxNum int) {
	util.RecreateIndexDir()
	paths := util.GatherAllSegyPaths(constants.GetDataDir(), maxNum)
	catalog := make(model.Catalog)

	for i, path := range paths {
		fmt.Printf("Indexing %v of %v segy files\n", i+1, len(paths))
		idx, err := shot.BuildIndex(path)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}

		overview := model.IndexOverview{
			SourceFile: filepath.Base(path),
			SourcePath: path,
			Filename:   uuid.New().String() + ".dat",
			NumShots:   idx.NumShots,
			NumTraces:  countTraces(idx),
		}
		util.CreateBinary(filepath.Join(constants.GetIndexDir(), overview.Filename), idx)
		catalog[overview.SourceFile] = overview
	}

	util.CreateBinary(util.GetCatalogPath(), catalog)
}

func countTraces(idx *model.ShotIndex) int {
	var total int
	for _, record := range idx.Records {
		total += idx.Shots[record].NumTraces
	}
	return total
}
