package client

import (
	"os"
	"time"
)

// Default connection settings for the bizcurrency API. Both can be overridden
// through the environment.
const (
	DefaultBaseURL  = "https://www.bizcurrency.com:20500"
	DefaultCallerID = "12FDEC27-6E1F-4EC5-BF15-1C7E75A99117"

	// DefaultTimeout bounds every business API call.
	DefaultTimeout = 30 * time.Second

	// refreshTimeout bounds the token refresh exchange so a hung refresh
	// cannot strand callers waiting on its outcome.
	refreshTimeout = 15 * time.Second
)

// API endpoint paths.
const (
	endpointAuthenticate      = "/api/v1/Authenticate"
	endpointAuthRefresh       = "/api/v1/Authenticate/Refresh"
	endpointBalances          = "/api/v1/CustomerAccountBalance"
	endpointStatement         = "/api/v1/CustomerAccountStatement"
	endpointPaymentCreate     = "/api/v1/InstantPayment"
	endpointPaymentPost       = "/api/v1/InstantPayment/Post"
	endpointPaymentSearch     = "/api/v1/InstantPayment/Search"
	endpointFXQuote           = "/api/v1/FXDealQuote"
	endpointFXBuyCurrencies   = "/api/v1/FXCurrencyList/Buy"
	endpointFXSellCurrencies  = "/api/v1/FXCurrencyList/Sell"
	endpointFXDealSearch      = "/api/v1/FXDeal/Search"
	endpointPaymentCurrencies = "/api/v1/PaymentCurrencyList"
)

// Config holds the connection settings shared by the auth and business
// clients.
type Config struct {
	BaseURL  string
	CallerID string
	Timeout  time.Duration
}

// ConfigFromEnv builds a Config from BIZCLI_API_URL and BIZCLI_CALLER_ID,
// falling back to the defaults.
func ConfigFromEnv() Config {
	cfg := Config{
		BaseURL:  DefaultBaseURL,
		CallerID: DefaultCallerID,
		Timeout:  DefaultTimeout,
	}
	if v := os.Getenv("BIZCLI_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("BIZCLI_CALLER_ID"); v != "" {
		cfg.CallerID = v
	}
	return cfg
}
