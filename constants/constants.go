package constants

import "os"

func GetIndexDir() string {
	path := os.Getenv("INDEX_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetDataDir() string {
	path := os.Getenv("DATA_PATH")
	if path != "" {
		return path
	}

	panic("DATA_PATH environment variable is not set!")
}

// CatalogFilename is the gob file mapping segy files to their index dats.
const CatalogFilename = "allIndexes.dat"

// SEGY stores the sample interval in microseconds; indexes expose millis.
const MicrosPerMilli = 1000
