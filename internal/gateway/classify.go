package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// Category buckets a backend-call failure for uniform handling by callers.
type Category string

const (
	// CategoryTransport covers network-level failures (unreachable, timeout).
	CategoryTransport Category = "transport"
	// CategoryClient covers HTTP 4xx responses.
	CategoryClient Category = "client"
	// CategoryServer covers HTTP 5xx responses.
	CategoryServer Category = "server"
	// CategoryUnknown covers anything that fits no other bucket.
	CategoryUnknown Category = "unknown"
)

// Fixed user-facing messages per failure kind.
const (
	MsgUnreachable = "서버에 연결할 수 없습니다. 서버 상태를 확인해주세요."
	MsgTimeout     = "요청 시간이 초과되었습니다. 잠시 후 다시 시도해주세요."
	MsgBadRequest  = "잘못된 요청입니다."
	MsgNotFound    = "요청한 정보를 찾을 수 없습니다."
	MsgInternal    = "서버 내부 오류가 발생했습니다."
	MsgNotReady    = "서비스가 아직 준비되지 않았습니다. 잠시 후 다시 시도해주세요."
	MsgUnknown     = "알 수 없는 오류가 발생했습니다."
)

// CallError is a classified backend-call failure. Message is ready for
// display; Status is zero for non-HTTP failures.
type CallError struct {
	Category Category
	Status   int
	Message  string
	Err      error
}

func (e *CallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway: %s (%s): %v", e.Message, e.Category, e.Err)
	}
	return fmt.Sprintf("gateway: %s (%s)", e.Message, e.Category)
}

func (e *CallError) Unwrap() error { return e.Err }

// UserMessage returns the human-readable text to display for this failure.
func (e *CallError) UserMessage() string { return e.Message }

// UserMessage extracts the display text from any error. Errors that did not
// come through Classify fall back to their own message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.UserMessage()
	}
	return err.Error()
}

// Classify converts a non-HTTP failure into a CallError. HTTP status
// failures are classified by classifyStatus at the response site.
func Classify(err error) *CallError {
	if err == nil {
		return nil
	}
	var ce *CallError
	if errors.As(err, &ce) {
		return ce
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &CallError{Category: CategoryTransport, Message: MsgTimeout, Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return &CallError{Category: CategoryTransport, Message: MsgTimeout, Err: err}
		}
		return &CallError{Category: CategoryTransport, Message: MsgUnreachable, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &CallError{Category: CategoryTransport, Message: MsgTimeout, Err: err}
		}
		return &CallError{Category: CategoryTransport, Message: MsgUnreachable, Err: err}
	}

	return &CallError{Category: CategoryUnknown, Message: err.Error(), Err: err}
}

// classifyStatus maps an HTTP status plus optional backend detail onto a
// CallError. 503 ignores the body on purpose: "not ready" has one message.
func classifyStatus(status int, detail string) *CallError {
	switch {
	case status == http.StatusBadRequest:
		msg := MsgBadRequest
		if detail != "" {
			msg = detail
		}
		return &CallError{Category: CategoryClient, Status: status, Message: msg}
	case status == http.StatusNotFound:
		return &CallError{Category: CategoryClient, Status: status, Message: MsgNotFound}
	case status == http.StatusServiceUnavailable:
		return &CallError{Category: CategoryServer, Status: status, Message: MsgNotReady}
	case status == http.StatusInternalServerError:
		msg := MsgInternal
		if detail != "" {
			msg = detail
		}
		return &CallError{Category: CategoryServer, Status: status, Message: msg}
	case status >= 400 && status < 500:
		return &CallError{Category: CategoryClient, Status: status,
			Message: fmt.Sprintf("오류가 발생했습니다 (HTTP %d)", status)}
	case status >= 500:
		return &CallError{Category: CategoryServer, Status: status,
			Message: fmt.Sprintf("오류가 발생했습니다 (HTTP %d)", status)}
	default:
		return &CallError{Category: CategoryUnknown, Status: status,
			Message: fmt.Sprintf("오류가 발생했습니다 (HTTP %d)", status)}
	}
}
