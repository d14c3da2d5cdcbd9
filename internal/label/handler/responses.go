package handler

import (
	"time"

	"labelprint/internal/label/service"
)

// PrintResponse is the HTTP response for a submitted label.
type PrintResponse struct {
	OK          bool      `json:"ok"`
	JobID       string    `json:"job_id"`
	Code        string    `json:"code"`
	FontSize    float64   `json:"font_size"`
	Overflow    bool      `json:"overflow"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// FromResult converts a service Result to an HTTP response.
func FromResult(res *service.Result) *PrintResponse {
	return &PrintResponse{
		OK:          true,
		JobID:       res.JobID,
		Code:        string(res.Code),
		FontSize:    res.FontSize,
		Overflow:    res.Overflow,
		SubmittedAt: res.SubmittedAt,
	}
}
