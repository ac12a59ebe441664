// Package envelope define la respuesta estándar {success, statusCode, body} de la API.
package envelope

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FallbackMessage se usa cuando un fallo no trae mensaje propio.
const FallbackMessage = "An unexpected error occurred."

// Response es el envelope tipado. En éxito Body lleva el payload; en fallo Message
// lleva el texto, que se serializa también en el campo "body".
type Response[T any] struct {
	Success    bool
	StatusCode int
	Body       T
	Message    string
}

type wire struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Body       json.RawMessage `json:"body"`
}

func (r Response[T]) MarshalJSON() ([]byte, error) {
	var (
		body []byte
		err  error
	)
	if r.Success {
		body, err = json.Marshal(r.Body)
	} else {
		body, err = json.Marshal(r.Message)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(wire{Success: r.Success, StatusCode: r.StatusCode, Body: body})
}

func (r *Response[T]) UnmarshalJSON(data []byte) error {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Success = w.Success
	r.StatusCode = w.StatusCode
	if len(w.Body) == 0 || string(w.Body) == "null" {
		return nil
	}
	if w.Success {
		return json.Unmarshal(w.Body, &r.Body)
	}
	// en fallo el body debería ser un string; si no lo es se deja Message vacío
	var msg string
	if err := json.Unmarshal(w.Body, &msg); err == nil {
		r.Message = msg
	}
	return nil
}

// --- Constructores ---

func OK[T any](body T) Response[T] {
	return Response[T]{Success: true, StatusCode: http.StatusOK, Body: body}
}

func Fail[T any](statusCode int, message string) Response[T] {
	return Response[T]{Success: false, StatusCode: statusCode, Message: message}
}

func NotFound[T any](message string) Response[T] {
	return Fail[T](http.StatusNotFound, message)
}

func BadRequest[T any](message string) Response[T] {
	return Fail[T](http.StatusBadRequest, message)
}

// ServerError registra el error y devuelve un 500 con su mensaje.
func ServerError[T any](log *zap.Logger, err error) Response[T] {
	if err == nil {
		err = errors.New(FallbackMessage)
	}
	log.Error("❌ Error de servidor", zap.Error(err))

	msg := err.Error()
	if msg == "" {
		msg = FallbackMessage
	}
	return Fail[T](http.StatusInternalServerError, msg)
}

// Send escribe el envelope con su propio statusCode.
func Send[T any](c *gin.Context, r Response[T]) {
	c.JSON(r.StatusCode, r)
}
