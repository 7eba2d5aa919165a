package common

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	defaultErrorHTTPCode = http.StatusBadRequest
)

// HTTPError represents an error-compatible struct to hold http status code
// along with the error message
type HTTPError struct {
	Code    int
	Message string
}

func (he HTTPError) Error() string {
	return he.Message
}

func NewHTTPError(code int, format string, args ...interface{}) HTTPError {
	return HTTPError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

type httpErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSONError is a helper to return API errors to a user in JSON format
func WriteJSONError(w http.ResponseWriter, e error) error {
	w.Header().Set("Content-Type", "application/json")

	he, ok := e.(HTTPError)
	if !ok {
		he = HTTPError{Code: defaultErrorHTTPCode, Message: e.Error()}
	}

	data, err := json.Marshal(httpErrorResponse{Error: he.Error()})
	if err != nil {
		// this shouldn't ever happen
		w.WriteHeader(http.StatusInternalServerError)
		_, err = w.Write([]byte(`{"error": "internal server error"}`))
		return err
	}
	w.WriteHeader(he.Code)
	_, err = w.Write(data)
	return err
}
