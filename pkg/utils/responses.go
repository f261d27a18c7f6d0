package utils

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error    string            `json:"error"`
	Redirect string            `json:"redirect,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ResponseJSON writes data as JSON with custom status code
func ResponseJSON(w http.ResponseWriter, r *http.Request, code int, data any) {
	render.Status(r, code)
	render.JSON(w, r, data)
}

// ResponseError writes the standard error body
func ResponseError(w http.ResponseWriter, r *http.Request, code int, message, redirect string, details map[string]string) {
	ResponseJSON(w, r, code, ErrorResponse{
		Error:    message,
		Redirect: redirect,
		Details:  details,
	})
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, r *http.Request, data any) {
	ResponseJSON(w, r, http.StatusOK, data)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, r *http.Request, data any) {
	ResponseJSON(w, r, http.StatusCreated, data)
}

func ResponseMessage(w http.ResponseWriter, r *http.Request, message string) {
	ResponseJSON(w, r, http.StatusOK, MessageResponse{Message: message})
}

// ------------- Error responses -------------

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, r *http.Request, message string, details map[string]string) {
	ResponseError(w, r, http.StatusBadRequest, message, "", details)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	ResponseError(w, r, http.StatusUnauthorized, message, "", nil)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, r *http.Request, message, redirect string) {
	ResponseError(w, r, http.StatusForbidden, message, redirect, nil)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, r *http.Request, message string) {
	ResponseError(w, r, http.StatusNotFound, message, "", nil)
}

// returns 409 Conflict
func ResponseConflict(w http.ResponseWriter, r *http.Request, message string) {
	ResponseError(w, r, http.StatusConflict, message, "", nil)
}

// returns 413 Request Entity Too Large
func ResponseTooLarge(w http.ResponseWriter, r *http.Request, message string) {
	ResponseError(w, r, http.StatusRequestEntityTooLarge, message, "", nil)
}

// returns 429 Too Many Requests
func ResponseTooManyRequests(w http.ResponseWriter, r *http.Request) {
	ResponseError(w, r, http.StatusTooManyRequests, "Too many requests", "", nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, r *http.Request) {
	ResponseError(w, r, http.StatusInternalServerError, "Internal server error", "", nil)
}
