package client

import (
	"context"
	"fmt"
	"time"
)

// FXQuoteRequest asks for an exchange rate quote selling one currency for
// another.
type FXQuoteRequest struct {
	SellCurrency string  `json:"sellCurrency"`
	BuyCurrency  string  `json:"buyCurrency"`
	SellAmount   float64 `json:"sellAmount"`
}

// FXQuote is a priced quote. It is only valid until ExpiresAt.
type FXQuote struct {
	QuoteID      string  `json:"quoteId"`
	SellCurrency string  `json:"sellCurrency"`
	BuyCurrency  string  `json:"buyCurrency"`
	SellAmount   float64 `json:"sellAmount"`
	BuyAmount    float64 `json:"buyAmount"`
	Rate         float64 `json:"rate"`
	ExpiresAt    string  `json:"expiresAt"`
}

// FXDeal is a booked FX transaction.
type FXDeal struct {
	DealID       string  `json:"dealId"`
	SellCurrency string  `json:"sellCurrency"`
	BuyCurrency  string  `json:"buyCurrency"`
	SellAmount   float64 `json:"sellAmount"`
	BuyAmount    float64 `json:"buyAmount"`
	Rate         float64 `json:"rate"`
	Status       string  `json:"status"`
	TradeDate    string  `json:"tradeDate"`
}

// Currency is one entry of a currency list.
type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CurrencySide selects which currency list to fetch.
type CurrencySide string

const (
	CurrencySideBuy     CurrencySide = "buy"
	CurrencySideSell    CurrencySide = "sell"
	CurrencySidePayment CurrencySide = "payment"
)

// RequestFXQuote asks the API to price an FX deal.
func (c *Client) RequestFXQuote(ctx context.Context, req FXQuoteRequest) (*FXQuote, error) {
	var response struct {
		Quote    *FXQuote  `json:"quote"`
		Problems []Problem `json:"problems"`
	}
	if err := c.postJSON(ctx, endpointFXQuote, req, &response); err != nil {
		return nil, fmt.Errorf("failed to request FX quote: %w", err)
	}
	if err := checkProblems(response.Problems); err != nil {
		return nil, err
	}
	if response.Quote == nil {
		return nil, fmt.Errorf("quote response carried no quote")
	}
	return response.Quote, nil
}

// FetchCurrencyList retrieves the currencies available on the given side.
func (c *Client) FetchCurrencyList(ctx context.Context, side CurrencySide) ([]Currency, error) {
	var path string
	switch side {
	case CurrencySideBuy:
		path = endpointFXBuyCurrencies
	case CurrencySideSell:
		path = endpointFXSellCurrencies
	case CurrencySidePayment:
		path = endpointPaymentCurrencies
	default:
		return nil, fmt.Errorf("invalid currency list side: %q", side)
	}

	var response struct {
		Currencies []Currency `json:"currencies"`
		Problems   []Problem  `json:"problems"`
	}
	if err := c.getJSON(ctx, path, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch %s currency list: %w", side, err)
	}
	if err := checkProblems(response.Problems); err != nil {
		return nil, err
	}
	return response.Currencies, nil
}

// SearchFXDeals lists the FX deals booked in the given date range.
func (c *Client) SearchFXDeals(ctx context.Context, from, to time.Time) ([]FXDeal, error) {
	payload := map[string]string{
		"fromDate": from.Format("2006-01-02"),
		"toDate":   to.Format("2006-01-02"),
	}

	var response struct {
		Deals    []FXDeal  `json:"deals"`
		Problems []Problem `json:"problems"`
	}
	if err := c.postJSON(ctx, endpointFXDealSearch, payload, &response); err != nil {
		return nil, fmt.Errorf("failed to search FX deals: %w", err)
	}
	if err := checkProblems(response.Problems); err != nil {
		return nil, err
	}
	return response.Deals, nil
}
