package model

import "time"

// Contact is the data structure for a person that we know. Name and phone
// are mandatory; email and address may be nil and are then stored as NULL.
type Contact struct {
	Id        int64     `json:"id"                db:"id"`
	Name      string    `json:"name"              db:"name"`
	Phone     string    `json:"phone"             db:"phone"`
	Email     *string   `json:"email,omitempty"   db:"email"`
	Address   *string   `json:"address,omitempty" db:"address"`
	CreatedAt time.Time `json:"createdAt,omitzero" db:"created_at"`
}

// Codes used in the Response envelope. CodeNetwork is reserved for clients
// that need to report transport failures; the service never produces it.
const (
	CodeOK         = 0
	CodeValidation = 1
	CodeNotFound   = 2
	CodeDatabase   = 3
	CodeNetwork    = -1
)

// Response is the envelope returned by every endpoint. Msg is omitted on
// successful reads; Data is omitted when the operation yields no payload.
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

// OK builds a success envelope carrying a payload and no message.
func OK(data any) Response {
	return Response{Code: CodeOK, Data: data}
}

// Success builds a success envelope with a message and an optional payload.
func Success(msg string, data any) Response {
	return Response{Code: CodeOK, Msg: msg, Data: data}
}

// Failure builds an envelope for one of the nonzero codes.
func Failure(code int, msg string) Response {
	return Response{Code: code, Msg: msg}
}
