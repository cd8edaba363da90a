// Package mocks provides testify mocks for the checkout usecase and its ports.
package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	gatewayDomain "github.com/paylink/terminal/internal/gateway/domain"
	notifyDomain "github.com/paylink/terminal/internal/notify/domain"
	terminalDomain "github.com/paylink/terminal/internal/terminal/domain"
)

// MockCheckoutUseCase is a mock implementation of usecase.CheckoutUseCase.
type MockCheckoutUseCase struct {
	mock.Mock
}

func (m *MockCheckoutUseCase) GeneratePaymentLink(
	ctx context.Context,
	request terminalDomain.PaymentRequest,
) (*terminalDomain.ShareLink, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*terminalDomain.ShareLink), args.Error(1)
}

func (m *MockCheckoutUseCase) StartPayment(ctx context.Context, query url.Values) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

func (m *MockCheckoutUseCase) ShowReceipt(
	ctx context.Context,
	paymentID string,
	query url.Values,
) (*terminalDomain.Receipt, error) {
	args := m.Called(ctx, paymentID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*terminalDomain.Receipt), args.Error(1)
}

func (m *MockCheckoutUseCase) HandleWebhook(ctx context.Context, query url.Values, body []byte) error {
	args := m.Called(ctx, query, body)
	return args.Error(0)
}

// MockGateway is a mock implementation of usecase.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreatePayment(
	ctx context.Context,
	request *gatewayDomain.CreatePaymentRequest,
) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) GetPayment(ctx context.Context, paymentID string) (*gatewayDomain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gatewayDomain.Payment), args.Error(1)
}

// MockNotifier is a mock implementation of notify/service.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event notifyDomain.TransactionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
