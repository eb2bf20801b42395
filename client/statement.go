package client

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// StatementEntry is one booked transaction on an account statement.
type StatementEntry struct {
	BookingDate  string  `json:"bookingDate"`
	ValueDate    string  `json:"valueDate"`
	Description  string  `json:"description"`
	Reference    string  `json:"reference"`
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
	Balance      float64 `json:"balance"`
}

// FetchStatement retrieves the statement entries of one account for the given
// date range (inclusive).
func (c *Client) FetchStatement(ctx context.Context, accountID string, from, to time.Time) ([]StatementEntry, error) {
	query := url.Values{
		"accountId": {accountID},
		"fromDate":  {from.Format("2006-01-02")},
		"toDate":    {to.Format("2006-01-02")},
	}

	var response struct {
		Entries  []StatementEntry `json:"entries"`
		Problems []Problem        `json:"problems"`
	}
	if err := c.getJSON(ctx, endpointStatement, query, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch statement for account %s: %w", accountID, err)
	}
	if err := checkProblems(response.Problems); err != nil {
		return nil, err
	}
	return response.Entries, nil
}
