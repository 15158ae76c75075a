package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/fitstride/fitstride-api/internal/mail"
)

// MockNotifier records verification requests made by the lifecycle service.
type MockNotifier struct {
	mu    sync.Mutex
	calls []VerificationCall
}

// VerificationCall is one recorded SendVerification invocation.
type VerificationCall struct {
	To    string
	Token string
}

func (m *MockNotifier) SendVerification(to, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, VerificationCall{To: to, Token: token})
}

// Calls returns a copy of the recorded invocations.
func (m *MockNotifier) Calls() []VerificationCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]VerificationCall(nil), m.calls...)
}

// MockGateway records messages handed to the mail transport, optionally
// failing each send.
type MockGateway struct {
	mu       sync.Mutex
	messages []mail.Message
	Err      error
}

var _ mail.Gateway = (*MockGateway)(nil)

func (m *MockGateway) Send(ctx context.Context, msg mail.Message) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

// Messages returns a copy of the delivered messages.
func (m *MockGateway) Messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message(nil), m.messages...)
}

// MockImageStore returns a fixed path for any upload.
type MockImageStore struct {
	Path string
	Err  error
}

func (m *MockImageStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Path != "" {
		return m.Path, nil
	}
	return "/uploads/" + filename, nil
}
