package client

import (
	"context"
	"fmt"
)

// AccountBalance is one account's balance line.
type AccountBalance struct {
	AccountID        string  `json:"accountId"`
	AccountNumber    string  `json:"accountNumber"`
	AccountName      string  `json:"accountName"`
	CurrencyCode     string  `json:"currencyCode"`
	AvailableBalance float64 `json:"availableBalance"`
	CurrentBalance   float64 `json:"currentBalance"`
}

// FetchBalances retrieves the balances of all accounts visible to the
// logged-in user.
func (c *Client) FetchBalances(ctx context.Context) ([]AccountBalance, error) {
	var response struct {
		Balances []AccountBalance `json:"balances"`
		Problems []Problem        `json:"problems"`
	}
	if err := c.getJSON(ctx, endpointBalances, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch account balances: %w", err)
	}
	if err := checkProblems(response.Problems); err != nil {
		return nil, err
	}
	return response.Balances, nil
}
