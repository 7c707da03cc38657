package providers

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockClientChat(t *testing.T) {
	mock := NewMockClient()
	mock.ResponseText = "hello"

	result, err := mock.Chat(context.Background(), &ChatRequest{
		Model:    "test-model",
		Messages: []Message{{Role: "user", Content: "hi there"}},
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	if result.Content != "hello" {
		t.Errorf("Content = %q, want hello", result.Content)
	}
	if !result.Success {
		t.Error("result should be successful")
	}
	if result.ModelUsed != "test-model" {
		t.Errorf("ModelUsed = %q, want test-model", result.ModelUsed)
	}
	if result.TotalTokens == 0 {
		t.Error("token estimates should be nonzero")
	}
	if mock.RequestCount() != 1 {
		t.Errorf("RequestCount() = %d, want 1", mock.RequestCount())
	}
}

func TestMockClientSequentialResponses(t *testing.T) {
	mock := NewMockClient()
	mock.ResponseText = "fallback"
	mock.Responses = []string{"first", "second"}

	want := []string{"first", "second", "fallback"}
	for i, expected := range want {
		result, err := mock.Chat(context.Background(), &ChatRequest{})
		if err != nil {
			t.Fatalf("Chat() call %d error = %v", i+1, err)
		}
		if result.Content != expected {
			t.Errorf("call %d Content = %q, want %q", i+1, result.Content, expected)
		}
	}
}

func TestMockClientFailure(t *testing.T) {
	mock := NewMockClient()
	mock.ShouldFail = true
	mock.FailStatus = 500

	result, err := mock.Chat(context.Background(), &ChatRequest{})
	if err == nil {
		t.Fatal("Chat() should fail when configured to")
	}
	if result.Success {
		t.Error("result should not be successful")
	}
	if result.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", result.StatusCode)
	}
}

func TestMockClientCancellation(t *testing.T) {
	mock := NewMockClient()
	mock.Latency = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mock.Chat(ctx, &ChatRequest{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Chat() error = %v, want context.Canceled", err)
	}
}

func TestMockClientReset(t *testing.T) {
	mock := NewMockClient()
	mock.Chat(context.Background(), &ChatRequest{})
	mock.Chat(context.Background(), &ChatRequest{})

	mock.Reset()
	if mock.RequestCount() != 0 {
		t.Errorf("RequestCount() after Reset = %d, want 0", mock.RequestCount())
	}
}
