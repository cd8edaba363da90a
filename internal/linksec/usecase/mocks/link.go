// Package mocks provides testify mocks for the link usecases.
package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
)

// MockLinkIssuer is a mock implementation of usecase.LinkIssuer.
type MockLinkIssuer struct {
	mock.Mock
}

func (m *MockLinkIssuer) IssuePaymentLink(
	ctx context.Context,
	amount string,
	pii linksecDomain.PIIRecord,
) (*linksecDomain.PaymentLink, error) {
	args := m.Called(ctx, amount, pii)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*linksecDomain.PaymentLink), args.Error(1)
}

func (m *MockLinkIssuer) IssueReceiptLink(
	ctx context.Context,
	orderID string,
	pii linksecDomain.PIIRecord,
) (*linksecDomain.ReceiptLinks, error) {
	args := m.Called(ctx, orderID, pii)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*linksecDomain.ReceiptLinks), args.Error(1)
}

func (m *MockLinkIssuer) QRCodeURL(link string) string {
	args := m.Called(link)
	return args.String(0)
}

// MockLinkVerifier is a mock implementation of usecase.LinkVerifier.
type MockLinkVerifier struct {
	mock.Mock
}

func (m *MockLinkVerifier) VerifyPaymentLink(
	ctx context.Context,
	query url.Values,
) (*linksecDomain.PaymentIntent, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*linksecDomain.PaymentIntent), args.Error(1)
}

func (m *MockLinkVerifier) VerifyReceiptLink(
	ctx context.Context,
	query url.Values,
) (*linksecDomain.ReceiptClaims, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*linksecDomain.ReceiptClaims), args.Error(1)
}

func (m *MockLinkVerifier) VerifyWebhookLink(
	ctx context.Context,
	query url.Values,
) (*linksecDomain.WebhookClaims, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*linksecDomain.WebhookClaims), args.Error(1)
}
