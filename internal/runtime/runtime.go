// Package runtime models the hosting platform's invocation contract: the
// inbound request, a response builder, and two log sinks.
package runtime

import (
	"log/slog"
	"net/http"
)

// BodyKind tags how the inbound body arrived.
type BodyKind int

const (
	// BodyNone means no body was supplied.
	BodyNone BodyKind = iota
	// BodyRaw means the body is an unparsed string.
	BodyRaw
	// BodyObject means the platform already parsed the body into a mapping.
	BodyObject
)

// Body is the inbound request body in one of its platform forms.
type Body struct {
	Kind   BodyKind
	Raw    string
	Object map[string]any
}

// RawBody wraps an unparsed body.
func RawBody(s string) Body {
	return Body{Kind: BodyRaw, Raw: s}
}

// ObjectBody wraps a body the platform already decoded.
func ObjectBody(m map[string]any) Body {
	if m == nil {
		return Body{}
	}
	return Body{Kind: BodyObject, Object: m}
}

// Request is the inbound invocation request.
type Request struct {
	Method  string
	Headers http.Header
	Body    Body
}

// Header returns the first value of a request header.
func (r *Request) Header(key string) string {
	if r.Headers == nil {
		return ""
	}
	return r.Headers.Get(key)
}

// Response is the structured result handed back to the platform.
type Response struct {
	StatusCode int
	Body       any
}

// Responder builds platform responses.
type Responder struct{}

// JSON builds a JSON response with the given status code.
func (Responder) JSON(body any, status int) Response {
	return Response{StatusCode: status, Body: body}
}

// LogFunc is a log sink taking a message and slog-style key/value pairs.
type LogFunc func(msg string, args ...any)

// Context is everything a function receives for one invocation.
type Context struct {
	Req   *Request
	Res   Responder
	Log   LogFunc
	Error LogFunc
}

// NewContext binds the log sinks to a structured logger.
func NewContext(req *Request, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Context{
		Req:   req,
		Log:   logger.Info,
		Error: logger.Error,
	}
}
