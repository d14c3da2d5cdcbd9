package handler

import (
	"encoding/json"
	"io"
	"net/http"
)

// maxBodyBytes caps request bodies; a scanned code is a few dozen bytes.
const maxBodyBytes = 16 << 10

// PrintRequest is the HTTP request body for POST /api/print and /api/preview.
type PrintRequest struct {
	Code any `json:"code"`
}

// RawCode returns the code field as a string. A missing body, invalid JSON,
// a missing field or a non-string value all read as "" and are left to the
// policy to reject.
func (r *PrintRequest) RawCode() string {
	if r == nil {
		return ""
	}
	s, _ := r.Code.(string)
	return s
}

func decodePrintRequest(w http.ResponseWriter, r *http.Request) *PrintRequest {
	var req PrintRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return &req
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return &PrintRequest{}
	}
	return &req
}
