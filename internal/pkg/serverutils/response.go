package serverutils

import "notes-api/internal/pkg/apperror"

// Response is the envelope of every successful JSON reply.
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorResponse struct {
	Message string               `json:"message"`
	Errors  apperror.FieldErrors `json:"errors,omitempty"`
}

func DataResponse(data interface{}) Response {
	return Response{Data: data}
}

func DataWithMessage(data interface{}, message string) Response {
	return Response{Data: data, Message: message}
}

func MessageResponse(message string) Response {
	return Response{Message: message}
}
