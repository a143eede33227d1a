package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docreport/internal/mail"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
