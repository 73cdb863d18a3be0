package model

type SegmentRequestBody struct {
	Score         Score `json:"score"`
	NoDottedRests bool  `json:"noDottedRests,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
