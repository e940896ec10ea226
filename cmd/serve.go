package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/salwon/segyio/constants"
	"github.com/salwon/segyio/db"
	"github.com/salwon/segyio/model"
	"github.com/salwon/segyio/shot"
	"github.com/salwon/segyio/util"
	"github.com/spf13/cobra"
)

var catalog model.Catalog

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves shots over HTTP",
	Long:  `Serves shots out of indexed SEGY files over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// LoadCatalog reads the catalog written by the index command.
func LoadCatalog() {
	catalog = util.ReadBinaryOrPanic[model.Catalog](util.GetCatalogPath())
}

func loadIndex(name string) (*model.ShotIndex, model.IndexOverview, bool) {
	overview, ok := catalog[name]
	if !ok {
		return nil, overview, false
	}
	idx := util.ReadBinaryOrPanic[model.ShotIndex](filepath.Join(constants.GetIndexDir(), overview.Filename))
	return &idx, overview, true
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func HandleListFiles(w http.ResponseWriter, r *http.Request) {
	names := util.GetKeys(catalog)
	sort.Strings(names)

	// metadata is best effort, the listing works without the db
	metadatas, err := db.GetSurveyMetadatas(names[:util.Min(len(names), 10)])
	if err != nil {
		fmt.Printf("Could not fetch survey metadata: %v\n", err)
	}

	res := make([]model.FileOverview, 0)
	for _, name := range names {
		overview := catalog[name]
		fo := model.FileOverview{
			Name:      name,
			NumShots:  overview.NumShots,
			NumTraces: overview.NumTraces,
		}
		if m, ok := metadatas[name]; ok {
			fo.SurveyMetadata = &m
		}
		res = append(res, fo)
	}
	json.NewEncoder(w).Encode(res)
}

func HandleGetFile(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	idx, _, ok := loadIndex(name)
	if !ok {
		writeError(w, 404, "No index for file: "+name)
		return
	}

	json.NewEncoder(w).Encode(model.FileIndexResponse{
		Name:           name,
		NumShots:       idx.NumShots,
		NumSamples:     idx.NumSamples,
		SampleInterval: idx.SampleInterval,
		Records:        idx.Records,
		Shots:          idx.Shots,
	})
}

func HandleGetShot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	record, err := strconv.ParseInt(vars["record"], 10, 32)
	if err != nil {
		writeError(w, 400, "Not a field record number: "+vars["record"])
		return
	}

	idx, overview, ok := loadIndex(name)
	if !ok {
		writeError(w, 404, "No index for file: "+name)
		return
	}

	accessor := shot.NewAccessor(idx, overview.SourcePath)
	traces, err := accessor.GetShot(int32(record))
	if errors.Is(err, shot.ErrUnknownShot) {
		writeError(w, 404, err.Error())
		return
	}
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}

	desc := idx.Shots[int32(record)]
	json.NewEncoder(w).Encode(model.ShotResponse{
		FieldRecord:    int32(record),
		NumTraces:      desc.NumTraces,
		NumSamples:     idx.NumSamples,
		SampleInterval: idx.SampleInterval,
		SourceXY:       desc.SourceXY,
		ReceiverXYs:    desc.ReceiverXYs,
		Traces:         traces,
	})
}

// NewRouter wires up the HTTP surface. The e2e test drives it directly.
func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/files", HandleListFiles).Methods("GET")
	router.HandleFunc("/files/{name}", HandleGetFile).Methods("GET")
	router.HandleFunc("/files/{name}/shots/{record}", HandleGetShot).Methods("GET")
	return router
}

func serve() {
	LoadCatalog()

	handler := cors.Default().Handler(NewRouter())
	log.Fatal(http.ListenAndServe(":8080", handler))
}
