package processor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/richard-senior/livexg/internal/logger"
	"github.com/richard-senior/livexg/pkg/util/livexg"
)

// Error codes reported in an ErrorResponse
const (
	CodeInvalidRequest  = "invalid_request"
	CodeInvalidDuration = "invalid_duration"
	CodeMatchFinished   = "match_already_finished"
	CodePresetNotFound  = "preset_not_found"
	CodeRejected        = "rejected"
)

// Response is the CLI answer to one snapshot
type Response struct {
	RequestID string         `json:"requestId,omitempty"`
	Report    *livexg.Report `json:"report"`
	Raw       *livexg.Output `json:"raw,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	RequestID string `json:"requestId,omitempty"`
	Error     struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// RequestError is returned alongside an ErrorResponse body
type RequestError struct {
	Code string
	Err  error
}

func (e *RequestError) Error() string {
	return e.Code + ": " + e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// request is a flat snapshot plus CLI only fields
type request struct {
	livexg.FlatInput
	RequestID string `json:"requestId,omitempty"`
	Raw       bool   `json:"raw,omitempty"`
}

// createErrorResponse creates an error response body and the matching error
func createErrorResponse(code string, err error, requestID string) ([]byte, error) {
	var response ErrorResponse
	response.RequestID = requestID
	response.Error.Code = code
	response.Error.Message = err.Error()

	body, merr := json.MarshalIndent(response, "", "  ")
	if merr != nil {
		return nil, merr
	}
	return body, &RequestError{Code: code, Err: err}
}

// ProcessRequest evaluates one JSON snapshot and returns the indented report.
// A refused snapshot returns an ErrorResponse body and a *RequestError.
func ProcessRequest(svc *livexg.Service, input []byte) ([]byte, error) {
	var req request
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		logger.Error("Failed to parse input JSON", err)
		return createErrorResponse(CodeInvalidRequest, fmt.Errorf("invalid JSON: %w", err), "")
	}
	logger.Info("Processing snapshot", req.RequestID, req.MinutesPlayed)

	out, err := svc.Project(&req.FlatInput)
	if err != nil {
		return createErrorResponse(errorCode(err), err, req.RequestID)
	}

	response := Response{RequestID: req.RequestID, Report: livexg.NewReport(out)}
	if req.Raw {
		response.Raw = out
	}
	return json.MarshalIndent(response, "", "  ")
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, livexg.ErrInvalidDuration):
		return CodeInvalidDuration
	case errors.Is(err, livexg.ErrMatchAlreadyFinished):
		return CodeMatchFinished
	case errors.Is(err, livexg.ErrPresetNotFound):
		return CodePresetNotFound
	default:
		return CodeRejected
	}
}
