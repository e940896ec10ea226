package model

// XY is a point in the survey coordinate system. SEGY stores coordinates
// as 4-byte integers in the trace header.
type XY struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// TraceHeader carries the per-trace header fields the indexer cares about.
// The segy package fills it while scanning; nothing else is decoded.
type TraceHeader struct {
	FieldRecord int32
	SourceX     int32
	SourceY     int32
	GroupX      int32
	GroupY      int32
}

// ShotDescriptor locates one shot inside the file's flat trace sequence.
type ShotDescriptor struct {
	// TracePosition is the offset of the shot's first trace in the file's
	// overall trace order
	TracePosition int `json:"trace_position"`
	NumTraces     int `json:"num_traces"`
	SourceXY      XY  `json:"source_xy"`
	// ReceiverXYs has one entry per trace, in trace order
	ReceiverXYs []XY `json:"receiver_xys"`
}

// ShotIndex is a random-access index over a shot-ordered SEGY file.
// shot.BuildIndex fills it in one pass; it is read-only after that.
type ShotIndex struct {
	Filename       string
	NumShots       int
	NumSamples     int
	SampleInterval float64 // milliseconds

	// TracesPerShotNominal is the binary header's traces-per-ensemble value.
	// Individual shots can differ from it, which is the whole point of
	// building the index.
	TracesPerShotNominal int

	Shots map[int32]*ShotDescriptor

	// Records holds field record numbers in first-seen order
	Records []int32
}
