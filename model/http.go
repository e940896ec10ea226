package model

type FileOverview struct {
	Name           string          `json:"name"`
	NumShots       int             `json:"num_shots"`
	NumTraces      int             `json:"num_traces"`
	SurveyMetadata *SurveyMetadata `json:"survey_metadata"`
}

type FileIndexResponse struct {
	Name           string                    `json:"name"`
	NumShots       int                       `json:"num_shots"`
	NumSamples     int                       `json:"num_samples"`
	SampleInterval float64                   `json:"sample_interval"`
	Records        []int32                   `json:"records"`
	Shots          map[int32]*ShotDescriptor `json:"shots"`
}

type ShotResponse struct {
	FieldRecord    int32       `json:"field_record"`
	NumTraces      int         `json:"num_traces"`
	NumSamples     int         `json:"num_samples"`
	SampleInterval float64     `json:"sample_interval"`
	SourceXY       XY          `json:"source_xy"`
	ReceiverXYs    []XY        `json:"receiver_xys"`
	Traces         [][]float32 `json:"traces"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
