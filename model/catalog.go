package model

// IndexOverview is the catalog entry for one indexed SEGY file.
type IndexOverview struct {
	SourceFile string // base name of the segy file
	SourcePath string
	Filename   string // index .dat under the index dir
	NumShots   int
	NumTraces  int
}

// Catalog maps source file names to their persisted index.
type Catalog = map[string]IndexOverview
