// Package mocks provides testify mocks for the auth usecases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/paylink/terminal/internal/auth/domain"
)

// MockSessionUseCase is a mock implementation of usecase.SessionUseCase.
type MockSessionUseCase struct {
	mock.Mock
}

func (m *MockSessionUseCase) Login(ctx context.Context, password string) (*authDomain.Session, error) {
	args := m.Called(ctx, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

func (m *MockSessionUseCase) Authenticate(ctx context.Context, cookie string) error {
	args := m.Called(ctx, cookie)
	return args.Error(0)
}
