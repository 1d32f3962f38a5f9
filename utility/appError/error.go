package appError

import (
	"fmt"
	"net/http"
)

// Err ... Application error carrying the taxonomy type and HTTP-equivalent code
type Err struct {
	ErrCode int
	ErrType string
	Err     error
	ErrData interface{}
}

func (e Err) Error() string {
	return fmt.Sprintf("%s", e.Err)
}

// Type ... Returns the taxonomy type of an error, SERVER_ERR for foreign errors
func Type(err error) string {
	if appErr, ok := err.(Err); ok {
		return appErr.ErrType
	}
	return "SERVER_ERR"
}

// Code ... Returns the HTTP-equivalent status of an error, 500 for foreign errors
func Code(err error) int {
	if appErr, ok := err.(Err); ok {
		return appErr.ErrCode
	}
	return http.StatusInternalServerError
}
