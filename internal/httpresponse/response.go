package httpresponse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	errs "sgf_engine/internal/errors"
)

type Response[T any] struct {
	Status int `json:"Status"`
	Body   any `json:"Body,omitempty"`
}

type ErrorResponse struct {
	ErrorDescription string `json:"ErrorDescription"`
	Kind             string `json:"Kind,omitempty"`
	Rule             string `json:"Rule,omitempty"`
}

const INTERNALERRORJSON = "{\"Status\": 500,\"Body\":{\"ErrorDescription\": \"Internal server error\"}}"

const MALFORMEDJSON_errorDesc = "json unmarshalling error"

// WriteResponseWithStatus writes body inside the {Status, Body} envelope.
func WriteResponseWithStatus(w http.ResponseWriter, status int, body any) {
	jsonByte, err := marshalStatusJson(status, body)
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(jsonByte)
}

func marshalStatusJson(status int, body any) ([]byte, error) {
	response := Response[any]{
		Status: status,
		Body:   body,
	}
	return json.Marshal(response)
}

// WriteError maps err to a status and writes it as an ErrorResponse.
// Internal failures are not described to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		WriteInternalErrorResponse(w)
		return
	}

	resp := ErrorResponse{ErrorDescription: err.Error(), Rule: errs.RuleOf(err)}
	if kind, ok := errs.KindOf(err); ok {
		resp.Kind = kind.String()
	}
	WriteResponseWithStatus(w, status, resp)
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidSgf), errors.Is(err, errs.ErrInvalidGame):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrRecordNotFound),
		errors.Is(err, errs.ErrGameIndex),
		errors.Is(err, errs.ErrNodePath),
		errors.Is(err, errs.ErrNodeNotInGame):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	// like http.Error, with a JSON content type
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}
