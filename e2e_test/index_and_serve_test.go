//go:build e2e
// +build e2e

package e2e_test

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/salwon/segyio/cmd"
	"github.com/salwon/segyio/model"
	"github.com/stretchr/testify/assert"
)

// five traces: field records 7,7,7,9,9, sample j of trace i is 100*i + j
func writeFixture(path string) {
	buf := make([]byte, 3600)
	binary.BigEndian.PutUint16(buf[3216:], 2000) // 2000us interval
	binary.BigEndian.PutUint16(buf[3220:], 3)    // 3 samples per trace
	binary.BigEndian.PutUint16(buf[3224:], 5)    // IEEE float

	records := []uint32{7, 7, 7, 9, 9}
	for i, record := range records {
		hdr := make([]byte, 240)
		binary.BigEndian.PutUint32(hdr[8:], record)
		buf = append(buf, hdr...)
		for j := 0; j < 3; j++ {
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], math.Float32bits(float32(100*i+j)))
			buf = append(buf, b[:]...)
		}
	}

	if err := os.WriteFile(path, buf, 0666); err != nil {
		panic(err.Error())
	}
}

func TestMain(m *testing.M) {
	dataDir, err := os.MkdirTemp("", "segyio-data")
	if err != nil {
		panic(err.Error())
	}
	indexDir, err := os.MkdirTemp("", "segyio-index")
	if err != nil {
		panic(err.Error())
	}
	os.Setenv("DATA_PATH", dataDir)
	os.Setenv("INDEX_PATH", indexDir)

	writeFixture(filepath.Join(dataDir, "line42.sgy"))

	cmd.Index(0)
	cmd.LoadCatalog()

	exitVal := m.Run()

	os.RemoveAll(dataDir)
	os.RemoveAll(indexDir)
	os.Exit(exitVal)
}

func get(path string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)
	return w.Result()
}

func TestListFilesE2E(t *testing.T) {
	resp := get("/files")
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 200)

	var files []model.FileOverview
	err := json.Unmarshal(respBody, &files)
	if err != nil {
		panic(err.Error())
	}

	assert.Equal(1, len(files))
	assert.Equal("line42.sgy", files[0].Name)
	assert.Equal(2, files[0].NumShots)
	assert.Equal(5, files[0].NumTraces)
}

func TestGetFileE2E(t *testing.T) {
	resp := get("/files/line42.sgy")
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 200)

	var file model.FileIndexResponse
	err := json.Unmarshal(respBody, &file)
	if err != nil {
		panic(err.Error())
	}

	assert.Equal([]int32{7, 9}, file.Records)
	assert.Equal(3, file.NumSamples)
	assert.Equal(2.0, file.SampleInterval)
	assert.Equal(0, file.Shots[7].TracePosition)
	assert.Equal(3, file.Shots[9].TracePosition)
}

func TestGetShotE2E(t *testing.T) {
	resp := get("/files/line42.sgy/shots/9")
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(resp.StatusCode, 200)

	var shotResp model.ShotResponse
	err := json.Unmarshal(respBody, &shotResp)
	if err != nil {
		panic(err.Error())
	}

	assert.Equal(int32(9), shotResp.FieldRecord)
	assert.Equal(2, shotResp.NumTraces)
	assert.Equal([][]float32{
		{300, 301, 302},
		{400, 401, 402},
	}, shotResp.Traces)
}

func TestGetShotUnknownRecordE2E(t *testing.T) {
	resp := get("/files/line42.sgy/shots/8")
	assert.Equal(t, resp.StatusCode, 404)
}

func TestGetShotUnknownFileE2E(t *testing.T) {
	resp := get("/files/nope.sgy/shots/7")
	assert.Equal(t, resp.StatusCode, 404)
}
