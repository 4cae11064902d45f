package activityapi

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrMalformedResponse is returned when a successful response body cannot be
// decoded as an activity collection.
var ErrMalformedResponse = errors.New("malformed response from activities service")

// RequestError is a non-2xx response from the activities service.
type RequestError struct {
	Op     string
	Status int
	// Message is the text the service put in the body's detail or message
	// field. It is empty when the body carried neither.
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
}

// NetworkError is a transport-level failure: the service never answered.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerMessage returns the service-supplied text carried by err, if any.
func ServerMessage(err error) (string, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message, true
	}
	return "", false
}

// bodyMessage extracts the user-facing text of a response body. detail wins
// over message. A detail that is a validation-error list yields the msg of its
// first entry. Anything that is not a JSON object yields "".
func bodyMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return ""
	}

	detail := doc.Get("detail")
	switch {
	case detail.Type == gjson.String && detail.Str != "":
		return detail.Str
	case detail.IsArray():
		if msg := detail.Get("0.msg"); msg.Type == gjson.String && msg.Str != "" {
			return msg.Str
		}
	}

	if msg := doc.Get("message"); msg.Type == gjson.String {
		return msg.Str
	}
	return ""
}
