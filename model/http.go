package model

// HTTP payloads for the serve command.

type ConversionResponse struct {
	Id   string `json:"id"`
	Midi []byte `json:"midi"`
}

type ValidationResponse struct {
	Valid    bool   `json:"valid"`
	Detail   string `json:"detail,omitempty"`
	Parts    int    `json:"parts"`
	Measures int    `json:"measures"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
