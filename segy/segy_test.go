package segy

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/salwon/segyio/model"
	"github.com/stretchr/testify/assert"
)

type testTrace struct {
	header model.TraceHeader
	// raw big-endian sample words, so both IBM and IEEE payloads can be built
	samples []uint32
}

func ieeeBits(vals ...float32) []uint32 {
	var res []uint32
	for _, v := range vals {
		res = append(res, math.Float32bits(v))
	}
	return res
}

func writeSegyFile(t *testing.T, format int, intervalMicros int, numSamples int, traces []testTrace) string {
	t.Helper()

	buf := make([]byte, tracesOffset)
	binary.BigEndian.PutUint16(buf[textHeaderSize+binEnsembleTraces:], uint16(len(traces)))
	binary.BigEndian.PutUint16(buf[textHeaderSize+binInterval:], uint16(intervalMicros))
	binary.BigEndian.PutUint16(buf[textHeaderSize+binSamples:], uint16(numSamples))
	binary.BigEndian.PutUint16(buf[textHeaderSize+binFormat:], uint16(format))

	for _, tr := range traces {
		hdr := make([]byte, traceHeaderSize)
		binary.BigEndian.PutUint32(hdr[hdrFieldRecord:], uint32(tr.header.FieldRecord))
		binary.BigEndian.PutUint32(hdr[hdrSourceX:], uint32(tr.header.SourceX))
		binary.BigEndian.PutUint32(hdr[hdrSourceY:], uint32(tr.header.SourceY))
		binary.BigEndian.PutUint32(hdr[hdrGroupX:], uint32(tr.header.GroupX))
		binary.BigEndian.PutUint32(hdr[hdrGroupY:], uint32(tr.header.GroupY))
		buf = append(buf, hdr...)
		for _, s := range tr.samples {
			var b [sampleSize]byte
			binary.BigEndian.PutUint32(b[:], s)
			buf = append(buf, b[:]...)
		}
	}

	path := filepath.Join(t.TempDir(), "test.sgy")
	if err := os.WriteFile(path, buf, 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenReadsBinaryHeader(t *testing.T) {
	traces := []testTrace{
		{header: model.TraceHeader{FieldRecord: 1}, samples: ieeeBits(0, 0, 0)},
		{header: model.TraceHeader{FieldRecord: 1}, samples: ieeeBits(0, 0, 0)},
	}
	path := writeSegyFile(t, FormatIEEEFloat, 2000, 3, traces)

	f, err := Open(path)
	assert := assert.New(t)
	assert.Nil(err)
	defer f.Close()

	assert.Equal(3, f.NumSamples())
	assert.Equal(2000, f.IntervalMicros())
	assert.Equal(2, f.NumTraces())
	assert.Equal(2, f.EnsembleTraces())
}

func TestOpenRejectsUnknownFormat(t *testing.T) {
	// format 3 is 2-byte integers, which nothing here decodes
	path := writeSegyFile(t, 3, 2000, 3, nil)

	_, err := Open(path)
	assert.NotNil(t, err)
}

func TestHeaders(t *testing.T) {
	traces := []testTrace{
		{
			header:  model.TraceHeader{FieldRecord: 7, SourceX: 1, SourceY: 2, GroupX: 10, GroupY: 20},
			samples: ieeeBits(1, 2),
		},
		{
			header:  model.TraceHeader{FieldRecord: 9, SourceX: 3, SourceY: 4, GroupX: 30, GroupY: 40},
			samples: ieeeBits(3, 4),
		},
	}
	path := writeSegyFile(t, FormatIEEEFloat, 2000, 2, traces)

	f, err := Open(path)
	assert := assert.New(t)
	assert.Nil(err)
	defer f.Close()

	headers, err := f.Headers()
	assert.Nil(err)
	assert.Equal([]model.TraceHeader{traces[0].header, traces[1].header}, headers)
}

func TestReadTracesIEEE(t *testing.T) {
	var traces []testTrace
	for i := 0; i < 5; i++ {
		traces = append(traces, testTrace{
			header:  model.TraceHeader{FieldRecord: int32(i)},
			samples: ieeeBits(float32(i*100), float32(i*100+1), float32(i*100+2)),
		})
	}
	path := writeSegyFile(t, FormatIEEEFloat, 2000, 3, traces)

	f, err := Open(path)
	assert := assert.New(t)
	assert.Nil(err)
	defer f.Close()

	matrix, err := f.ReadTraces(1, 3)
	assert.Nil(err)
	assert.Equal([][]float32{
		{100, 101, 102},
		{200, 201, 202},
		{300, 301, 302},
	}, matrix)
}

func TestReadTracesRejectsBadRange(t *testing.T) {
	traces := []testTrace{
		{header: model.TraceHeader{FieldRecord: 1}, samples: ieeeBits(0)},
	}
	path := writeSegyFile(t, FormatIEEEFloat, 2000, 1, traces)

	f, err := Open(path)
	assert := assert.New(t)
	assert.Nil(err)
	defer f.Close()

	_, err = f.ReadTraces(0, 2)
	assert.NotNil(err)
	_, err = f.ReadTraces(-1, 1)
	assert.NotNil(err)
}

func TestReadTracesIBM(t *testing.T) {
	traces := []testTrace{
		{
			header:  model.TraceHeader{FieldRecord: 1},
			samples: []uint32{0x41100000, 0x42640000, 0xC276A000, 0},
		},
	}
	path := writeSegyFile(t, FormatIBMFloat, 2000, 4, traces)

	f, err := Open(path)
	assert := assert.New(t)
	assert.Nil(err)
	defer f.Close()

	matrix, err := f.ReadTraces(0, 1)
	assert.Nil(err)
	assert.Equal([][]float32{{1, 100, -118.625, 0}}, matrix)
}

func TestIbmToFloat32(t *testing.T) {
	cases := []struct {
		bits     uint32
		expected float32
	}{
		{0x00000000, 0},
		{0x80000000, 0},
		{0x41100000, 1},
		{0xC1100000, -1},
		{0x42640000, 100},
		{0xC276A000, -118.625},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, ibmToFloat32(c.bits), "bits: %#08x", c.bits)
	}
}
