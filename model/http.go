package model

type EventInput struct {
	Kind  string `json:"kind"`
	Value uint8  `json:"value"`
	Delta uint32 `json:"delta"`
}

type AlignRequestBody struct {
	Gold         []EventInput `json:"gold"`
	Other        []EventInput `json:"other"`
	MaxGapSize   *int         `json:"max_gap_size,omitempty"`
	MaxUnmatched *int         `json:"max_unmatched,omitempty"`
}

type MatchRequestBody struct {
	Gold         []EventInput   `json:"gold"`
	Others       [][]EventInput `json:"others"`
	MaxGapSize   *int           `json:"max_gap_size,omitempty"`
	MaxUnmatched *int           `json:"max_unmatched,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
