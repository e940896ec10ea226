package model

// SurveyMetadata is acquisition info for a segy file, stored externally.
type SurveyMetadata struct {
	Area string `json:"area"`
	Crew string `json:"crew"`
	Year uint   `json:"year"`
}
