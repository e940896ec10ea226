package shot

import (
	"errors"
	"fmt"

	"github.com/salwon/segyio/constants"
	"github.com/salwon/segyio/model"
	"github.com/salwon/segyio/segy"
)

var (
	// ErrEmptySource means the segy file holds zero traces.
	ErrEmptySource = errors.New("segy source contains no traces")

	// ErrUnknownShot means the requested field record is not in the index.
	ErrUnknownShot = errors.New("unknown field record")

	// ErrIndexOutOfRange means an ordinal position fell outside the index.
	ErrIndexOutOfRange = errors.New("shot index out of range")
)

// BuildIndex scans every trace header once and groups consecutive traces
// by field record number. Each change of field record starts a new shot
// whose source position comes from the first trace; every trace appends
// its receiver position to the current shot.
//
// The file is assumed to be shot-ordered. If a field record recurs after
// other records were seen, the later run replaces the earlier one under
// that key (last occurrence wins); the earlier traces stay reachable only
// through neighbouring ordinals. The index is read-only once returned.
func BuildIndex(path string) (*model.ShotIndex, error) {
	f, err := segy.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	headers, err := f.Headers()
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("%v: %w", path, ErrEmptySource)
	}

	idx := &model.ShotIndex{
		Filename:             path,
		NumSamples:           f.NumSamples(),
		SampleInterval:       float64(f.IntervalMicros()) / constants.MicrosPerMilli,
		TracesPerShotNominal: f.EnsembleTraces(),
		Shots:                make(map[int32]*model.ShotDescriptor),
	}

	var curr *model.ShotDescriptor
	var currRecord int32
	for pos, h := range headers {
		if pos == 0 || h.FieldRecord != currRecord {
			currRecord = h.FieldRecord
			curr = &model.ShotDescriptor{
				TracePosition: pos,
				NumTraces:     1,
				SourceXY:      model.XY{X: h.SourceX, Y: h.SourceY},
			}
			if _, seen := idx.Shots[currRecord]; !seen {
				idx.Records = append(idx.Records, currRecord)
			}
			idx.Shots[currRecord] = curr
		} else {
			curr.NumTraces++
		}
		curr.ReceiverXYs = append(curr.ReceiverXYs, model.XY{X: h.GroupX, Y: h.GroupY})
	}
	idx.NumShots = len(idx.Records)

	return idx, nil
}

// Accessor answers shot lookups against a built index. Each retrieval
// opens the file for exactly one range read and closes it again, so a
// single Accessor is safe to share between goroutines.
type Accessor struct {
	Index *model.ShotIndex
	Path  string
}

func NewAccessor(index *model.ShotIndex, path string) *Accessor {
	return &Accessor{Index: index, Path: path}
}

// GetShot returns one shot's traces as a NumTraces x NumSamples matrix,
// rows in trace order.
func (a *Accessor) GetShot(record int32) ([][]float32, error) {
	desc, ok := a.Index.Shots[record]
	if !ok {
		return nil, fmt.Errorf("field record %v: %w", record, ErrUnknownShot)
	}
	return segy.ReadTraces(a.Path, desc.TracePosition, desc.NumTraces)
}

// GetByOrdinal returns the shot at position i in first-seen order,
// along with its field record. Negative values count from the end.
func (a *Accessor) GetByOrdinal(i int) (int32, [][]float32, error) {
	resolved := i
	if resolved < 0 {
		resolved += a.Index.NumShots
	}
	if resolved < 0 || resolved >= a.Index.NumShots {
		return 0, nil, fmt.Errorf("the index (%d) is out of range: %w", i, ErrIndexOutOfRange)
	}

	record := a.Index.Records[resolved]
	traces, err := a.GetShot(record)
	if err != nil {
		return 0, nil, err
	}
	return record, traces, nil
}

// GetSlice visits a [start, stop) range of ordinal positions, normalized
// with the rules of a sequence slice (negative values address from the
// end, out-of-range bounds clamp, step may be negative), and returns the
// visited shots keyed by field record. Shots in a slice may carry
// different trace counts, which is why the result is a map rather than
// one big matrix.
func (a *Accessor) GetSlice(start, stop, step int) (map[int32][][]float32, error) {
	lo, hi, st, err := sliceIndices(start, stop, step, a.Index.NumShots)
	if err != nil {
		return nil, err
	}

	res := make(map[int32][][]float32)
	for i := lo; (st > 0 && i < hi) || (st < 0 && i > hi); i += st {
		record := a.Index.Records[i]
		traces, err := a.GetShot(record)
		if err != nil {
			return nil, err
		}
		res[record] = traces
	}
	return res, nil
}

// GetAllShots retrieves every shot in the file, keyed by field record.
func (a *Accessor) GetAllShots() (map[int32][][]float32, error) {
	return a.GetSlice(0, a.Index.NumShots, 1)
}

// sliceIndices clamps start/stop against length the way slice.indices
// does in python, so that iterating from start by step while short of
// stop visits exactly the in-range positions.
func sliceIndices(start, stop, step, length int) (int, int, int, error) {
	if step == 0 {
		return 0, 0, 0, fmt.Errorf("slice step cannot be zero: %w", ErrIndexOutOfRange)
	}

	if start < 0 {
		start += length
		if start < 0 {
			if step < 0 {
				start = -1
			} else {
				start = 0
			}
		}
	} else if start >= length {
		if step < 0 {
			start = length - 1
		} else {
			start = length
		}
	}

	if stop < 0 {
		stop += length
		if stop < 0 {
			if step < 0 {
				stop = -1
			} else {
				stop = 0
			}
		}
	} else if stop >= length {
		if step < 0 {
			stop = length - 1
		} else {
			stop = length
		}
	}

	return start, stop, step, nil
}
