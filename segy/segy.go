package segy

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/salwon/segyio/model"
)

const (
	textHeaderSize  = 3200
	binHeaderSize   = 400
	tracesOffset    = textHeaderSize + binHeaderSize
	traceHeaderSize = 240
	sampleSize      = 4
)

// binary header field offsets, relative to the start of the binary header
const (
	binEnsembleTraces = 12
	binInterval       = 16
	binSamples        = 20
	binFormat         = 24
)

// trace header field offsets, relative to the start of the trace header
const (
	hdrFieldRecord = 8
	hdrSourceX     = 72
	hdrSourceY     = 76
	hdrGroupX      = 80
	hdrGroupY      = 84
)

// data sample format codes
const (
	FormatIBMFloat  = 1
	FormatIEEEFloat = 5
)

// File is an open SEGY file. It only decodes what the shot index needs:
// a few binary header scalars, the per-trace header fields of
// model.TraceHeader, and the 4-byte float sample data.
type File struct {
	f              *os.File
	numSamples     int
	interval       int
	format         int
	ensembleTraces int
	numTraces      int
}

// Open reads and validates the binary header and figures out the trace
// count from the file size. Sample data is not touched.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening segy file... %w", err)
	}

	binHeader := make([]byte, binHeaderSize)
	if _, err := f.ReadAt(binHeader, textHeaderSize); err != nil {
		f.Close()
		return nil, fmt.Errorf("error reading segy binary header... %w", err)
	}

	s := &File{
		f:              f,
		numSamples:     int(binary.BigEndian.Uint16(binHeader[binSamples:])),
		interval:       int(binary.BigEndian.Uint16(binHeader[binInterval:])),
		format:         int(binary.BigEndian.Uint16(binHeader[binFormat:])),
		ensembleTraces: int(binary.BigEndian.Uint16(binHeader[binEnsembleTraces:])),
	}

	if s.format != FormatIBMFloat && s.format != FormatIEEEFloat {
		f.Close()
		return nil, fmt.Errorf("unsupported data sample format code %v in %v", s.format, path)
	}
	if s.numSamples <= 0 {
		f.Close()
		return nil, fmt.Errorf("binary header of %v has no samples per trace", path)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error statting segy file... %w", err)
	}
	s.numTraces = int((stat.Size() - tracesOffset) / int64(s.traceSize()))

	return s, nil
}

func (s *File) Close() error {
	return s.f.Close()
}

func (s *File) NumSamples() int     { return s.numSamples }
func (s *File) IntervalMicros() int { return s.interval }
func (s *File) EnsembleTraces() int { return s.ensembleTraces }
func (s *File) NumTraces() int      { return s.numTraces }

func (s *File) traceSize() int {
	return traceHeaderSize + s.numSamples*sampleSize
}

// Headers decodes every trace header in file order, skipping over the
// sample data in between. One call, one sequential sweep of the file.
func (s *File) Headers() ([]model.TraceHeader, error) {
	if _, err := s.f.Seek(tracesOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("error seeking to first trace... %w", err)
	}

	r := bufio.NewReader(s.f)
	buf := make([]byte, traceHeaderSize)
	res := make([]model.TraceHeader, 0, s.numTraces)
	for i := 0; i < s.numTraces; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("error reading header of trace %v... %w", i, err)
		}
		res = append(res, model.TraceHeader{
			FieldRecord: int32(binary.BigEndian.Uint32(buf[hdrFieldRecord:])),
			SourceX:     int32(binary.BigEndian.Uint32(buf[hdrSourceX:])),
			SourceY:     int32(binary.BigEndian.Uint32(buf[hdrSourceY:])),
			GroupX:      int32(binary.BigEndian.Uint32(buf[hdrGroupX:])),
			GroupY:      int32(binary.BigEndian.Uint32(buf[hdrGroupY:])),
		})
		if _, err := r.Discard(s.numSamples * sampleSize); err != nil {
			return nil, fmt.Errorf("error skipping samples of trace %v... %w", i, err)
		}
	}
	return res, nil
}

// ReadTraces reads count consecutive traces starting at trace index start
// with a single seek and a single contiguous read, and returns them as a
// count x NumSamples matrix.
func (s *File) ReadTraces(start, count int) ([][]float32, error) {
	if start < 0 || count < 0 || start+count > s.numTraces {
		return nil, fmt.Errorf("trace range [%v, %v) outside file with %v traces", start, start+count, s.numTraces)
	}

	traceSize := s.traceSize()
	if _, err := s.f.Seek(int64(tracesOffset)+int64(start)*int64(traceSize), io.SeekStart); err != nil {
		return nil, fmt.Errorf("error seeking to trace %v... %w", start, err)
	}
	buf := make([]byte, count*traceSize)
	if _, err := io.ReadFull(s.f, buf); err != nil {
		return nil, fmt.Errorf("error reading %v traces at %v... %w", count, start, err)
	}

	res := make([][]float32, count)
	for i := range res {
		data := buf[i*traceSize+traceHeaderSize : (i+1)*traceSize]
		res[i] = s.decodeSamples(data)
	}
	return res, nil
}

func (s *File) decodeSamples(data []byte) []float32 {
	samples := make([]float32, s.numSamples)
	for j := range samples {
		bits := binary.BigEndian.Uint32(data[j*sampleSize:])
		if s.format == FormatIEEEFloat {
			samples[j] = math.Float32frombits(bits)
		} else {
			samples[j] = ibmToFloat32(bits)
		}
	}
	return samples
}

// ibmToFloat32 converts an IBM System/360 hexadecimal float:
// 1 sign bit, 7-bit excess-64 base-16 exponent, 24-bit fraction.
func ibmToFloat32(bits uint32) float32 {
	if bits&0x7fffffff == 0 {
		return 0
	}
	sign := float64(1)
	if bits&0x80000000 != 0 {
		sign = -1
	}
	exp := int(bits>>24&0x7f) - 64
	frac := float64(bits&0x00ffffff) / float64(1<<24)
	return float32(sign * frac * math.Pow(16, float64(exp)))
}

// ReadTraces opens path just long enough for a single range read. Every
// call gets its own file handle, so concurrent reads don't step on each
// other's seek position.
func ReadTraces(path string, start, count int) ([][]float32, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadTraces(start, count)
}
