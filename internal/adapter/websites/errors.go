package websites

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ResponseError is a non-2xx answer from Resource Manager.
type ResponseError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *ResponseError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Code, e.Message, e.StatusCode)
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`

	// Some App Service endpoints answer with the fields at the top level.
	Code    string `json:"Code"`
	Message string `json:"Message"`
}

func newResponseError(resp *http.Response, payload []byte) *ResponseError {
	respErr := &ResponseError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get("x-ms-request-id"),
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(payload, &envelope); err == nil {
		switch {
		case envelope.Error.Code != "" || envelope.Error.Message != "":
			respErr.Code = envelope.Error.Code
			respErr.Message = envelope.Error.Message
		case envelope.Code != "" || envelope.Message != "":
			respErr.Code = envelope.Code
			respErr.Message = envelope.Message
		}
	}

	if respErr.Message == "" {
		respErr.Message = http.StatusText(resp.StatusCode)
	}

	return respErr
}
