package generation

import (
	"context"
	"sync"
	"time"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

// MockCall records one Generate invocation against a MockClient.
type MockCall struct {
	Model  string
	Prompt string
	At     time.Time
}

// ScriptFunc produces a canned response (or error) for a mock call.
type ScriptFunc func(model models.ModelDescriptor, prompt string) (*Response, error)

// MockClient is a scriptable in-memory backend for tests and dry runs.
// It records every call, in arrival order, for later assertions.
type MockClient struct {
	mu     sync.Mutex
	calls  []MockCall
	script ScriptFunc
	delay  time.Duration
}

// NewMockClient creates a mock whose responses come from script.
func NewMockClient(script ScriptFunc) *MockClient {
	return &MockClient{script: script}
}

// NewStaticMock creates a mock that always returns the same text.
func NewStaticMock(text string) *MockClient {
	return NewMockClient(func(models.ModelDescriptor, string) (*Response, error) {
		return &Response{Text: text}, nil
	})
}

// SetDelay makes every call sleep for d before responding, respecting
// context cancellation.
func (m *MockClient) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Calls returns a copy of the recorded calls in arrival order.
func (m *MockClient) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockClient) Generate(ctx context.Context, model models.ModelDescriptor, prompt string) (*Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Model: model.Slug, Prompt: prompt, At: time.Now()})
	delay := m.delay
	script := m.script
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return script(model, prompt)
}
