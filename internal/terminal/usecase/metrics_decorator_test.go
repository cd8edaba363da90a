package usecase_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	terminalDomain "github.com/paylink/terminal/internal/terminal/domain"
	"github.com/paylink/terminal/internal/terminal/usecase"
	"github.com/paylink/terminal/internal/terminal/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectMetrics(ctx context.Context, m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", ctx, "terminal", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "terminal", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestCheckoutUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	query := url.Values{"amt": {"10000"}}

	t.Run("GeneratePaymentLink success", func(t *testing.T) {
		mockNext := &mocks.MockCheckoutUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewCheckoutUseCaseWithMetrics(mockNext, mockMetrics)

		request := terminalDomain.PaymentRequest{Amount: "10000"}
		share := &terminalDomain.ShareLink{PayURL: "https://pos.example.com/pay"}
		mockNext.On("GeneratePaymentLink", ctx, request).Return(share, nil).Once()
		expectMetrics(ctx, mockMetrics, "payment_link_generate", "success")

		got, err := uc.GeneratePaymentLink(ctx, request)
		assert.NoError(t, err)
		assert.Equal(t, share, got)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("StartPayment error", func(t *testing.T) {
		mockNext := &mocks.MockCheckoutUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewCheckoutUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("StartPayment", ctx, query).Return("", errors.New("boom")).Once()
		expectMetrics(ctx, mockMetrics, "payment_start", "error")

		got, err := uc.StartPayment(ctx, query)
		assert.Error(t, err)
		assert.Empty(t, got)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("ShowReceipt success", func(t *testing.T) {
		mockNext := &mocks.MockCheckoutUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewCheckoutUseCaseWithMetrics(mockNext, mockMetrics)

		receipt := &terminalDomain.Receipt{PaymentID: "pay_1", Status: "PAID"}
		mockNext.On("ShowReceipt", ctx, "pay_1", query).Return(receipt, nil).Once()
		expectMetrics(ctx, mockMetrics, "receipt_show", "success")

		got, err := uc.ShowReceipt(ctx, "pay_1", query)
		assert.NoError(t, err)
		assert.Equal(t, receipt, got)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("HandleWebhook error", func(t *testing.T) {
		mockNext := &mocks.MockCheckoutUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewCheckoutUseCaseWithMetrics(mockNext, mockMetrics)

		body := []byte(`{}`)
		mockNext.On("HandleWebhook", ctx, query, body).Return(errors.New("forbidden")).Once()
		expectMetrics(ctx, mockMetrics, "webhook_handle", "error")

		assert.Error(t, uc.HandleWebhook(ctx, query, body))
		mockMetrics.AssertExpectations(t)
	})
}
