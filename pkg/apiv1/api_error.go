package apiv1

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

var ErrBackend = errors.New("apiv1")

// Error is a backend reply with success=false, or a non-2xx status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("apiv1 (HTTP Status: %d)- %s", e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrBackend
}

// ToErrorFromResponse turns a failed reply into an *Error. The message field is used when the body
// is a {success, message} envelope, otherwise the raw body.
func ToErrorFromResponse(resp *resty.Response) error {
	var envelope Response
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil || len(envelope.Message) == 0 {
		return &Error{Status: resp.StatusCode(), Message: string(resp.Body())}
	}

	return &Error{Status: resp.StatusCode(), Message: envelope.MessageText()}
}

// UserMessage is the text surfaced to users for err.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return err.Error()
}
