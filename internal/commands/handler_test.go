package commands

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testMessage struct {
	payload string
	invalid bool
}

func (testMessage) Type() string { return "commands.test" }

func (m testMessage) Validate() error {
	if m.invalid {
		return errors.New("payload rejected")
	}
	return nil
}

func TestHandlerExecutesFunction(t *testing.T) {
	var got string
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		got = msg.payload
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{payload: "hello"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != "hello" {
		t.Fatalf("expected handler to run, got %q", got)
	}
}

func TestHandlerRejectsInvalidMessage(t *testing.T) {
	ran := false
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		ran = true
		return nil
	})

	err := h.Execute(context.Background(), testMessage{invalid: true})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if ran {
		t.Fatalf("expected execution skipped on invalid message")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	boom := errors.New("boom")
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return boom
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestHandlerCanceledContext(t *testing.T) {
	ran := false
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		ran = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.Execute(ctx, testMessage{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ran {
		t.Fatalf("expected execution skipped on canceled context")
	}
}

func TestHandlerTimeout(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}, WithTimeout[testMessage](5*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestHandlerNilContext(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		if ctx == nil {
			return errors.New("nil context reached handler")
		}
		return nil
	})

	if err := h.Execute(nil, testMessage{}); err != nil { //nolint:staticcheck
		t.Fatalf("Execute: %v", err)
	}
}

func TestNewHandlerNilFuncPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for nil function")
		}
	}()
	NewHandler[testMessage](nil)
}
