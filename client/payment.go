package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PaymentRequest describes an instant payment to be created.
type PaymentRequest struct {
	DebitAccountID     string  `json:"debitAccountId"`
	BeneficiaryName    string  `json:"beneficiaryName"`
	BeneficiaryAccount string  `json:"beneficiaryAccount"`
	Amount             float64 `json:"amount"`
	CurrencyCode       string  `json:"currencyCode"`
	Reference          string  `json:"reference"`

	// ClientReference is a client-generated idempotency key. Filled in by
	// CreatePayment when empty.
	ClientReference string `json:"clientReference"`
}

// Payment is an instant payment as returned by the API.
type Payment struct {
	PaymentID          string  `json:"paymentId"`
	Status             string  `json:"status"`
	DebitAccountID     string  `json:"debitAccountId"`
	BeneficiaryName    string  `json:"beneficiaryName"`
	BeneficiaryAccount string  `json:"beneficiaryAccount"`
	Amount             float64 `json:"amount"`
	CurrencyCode       string  `json:"currencyCode"`
	Reference          string  `json:"reference"`
	CreatedAt          string  `json:"createdAt"`
}

type paymentResponse struct {
	Payment  *Payment  `json:"payment"`
	Problems []Problem `json:"problems"`
}

// CreatePayment creates an instant payment in draft state. The payment is not
// executed until PostPayment is called for it.
func (c *Client) CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error) {
	if req.ClientReference == "" {
		req.ClientReference = uuid.NewString()
	}

	var response paymentResponse
	if err := c.postJSON(ctx, endpointPaymentCreate, req, &response); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	if err := checkProblems(response.Problems); err != nil {
		return nil, err
	}
	if response.Payment == nil {
		return nil, fmt.Errorf("payment response carried no payment")
	}
	log.Info().Str("payment_id", response.Payment.PaymentID).Str("client_reference", req.ClientReference).Msg("Payment created")
	return response.Payment, nil
}

// PostPayment submits a previously created payment for execution.
func (c *Client) PostPayment(ctx context.Context, paymentID string) (*Payment, error) {
	payload := map[string]string{"paymentId": paymentID}

	var response paymentResponse
	if err := c.postJSON(ctx, endpointPaymentPost, payload, &response); err != nil {
		return nil, fmt.Errorf("failed to post payment %s: %w", paymentID, err)
	}
	if err := checkProblems(response.Problems); err != nil {
		return nil, err
	}
	if response.Payment == nil {
		return nil, fmt.Errorf("payment response carried no payment")
	}
	log.Info().Str("payment_id", paymentID).Str("status", response.Payment.Status).Msg("Payment posted")
	return response.Payment, nil
}

// SearchPayments lists the payments created in the given date range.
func (c *Client) SearchPayments(ctx context.Context, from, to time.Time) ([]Payment, error) {
	payload := map[string]string{
		"fromDate": from.Format("2006-01-02"),
		"toDate":   to.Format("2006-01-02"),
	}

	var response struct {
		Payments []Payment `json:"payments"`
		Problems []Problem `json:"problems"`
	}
	if err := c.postJSON(ctx, endpointPaymentSearch, payload, &response); err != nil {
		return nil, fmt.Errorf("failed to search payments: %w", err)
	}
	if err := checkProblems(response.Problems); err != nil {
		return nil, err
	}
	return response.Payments, nil
}
