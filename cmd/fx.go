package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bizcurrency/bizcli/client"
	"github.com/bizcurrency/bizcli/pkg/validation"
)

func fxCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fx",
		Short: "Foreign exchange quotes and deals",
	}

	cmd.AddCommand(
		fxQuoteCmd(a),
		fxCurrenciesCmd(a),
		fxDealsCmd(a),
	)

	return cmd
}

func fxQuoteCmd(a *app) *cobra.Command {
	var req client.FXQuoteRequest

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Request an FX quote",
		Run: func(cmd *cobra.Command, args []string) {
			if err := requireSession(a); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidateCurrencyCode(req.SellCurrency); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidateCurrencyCode(req.BuyCurrency); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidateAmount(req.SellAmount); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			quote, err := a.api.RequestFXQuote(cmd.Context(), req)
			if err != nil {
				cmd.PrintErrln("Error: Failed to get an FX quote. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to request FX quote")
				return
			}

			cmd.Printf("Quote %s: sell %s %s, buy %s %s at rate %.6f\n",
				quote.QuoteID,
				formatAmount(quote.SellAmount), quote.SellCurrency,
				formatAmount(quote.BuyAmount), quote.BuyCurrency,
				quote.Rate)
			if quote.ExpiresAt != "" {
				cmd.Println("Quote valid until:", quote.ExpiresAt)
			}
		},
	}

	cmd.Flags().StringVar(&req.SellCurrency, "sell", "", "Currency to sell (e.g. USD)")
	cmd.Flags().StringVar(&req.BuyCurrency, "buy", "", "Currency to buy (e.g. HKD)")
	cmd.Flags().Float64Var(&req.SellAmount, "amount", 0, "Amount of the sell currency")

	return cmd
}

func fxCurrenciesCmd(a *app) *cobra.Command {
	var side string

	cmd := &cobra.Command{
		Use:   "currencies",
		Short: "List the currencies available for FX or payments",
		Run: func(cmd *cobra.Command, args []string) {
			if err := requireSession(a); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			currencies, err := a.api.FetchCurrencyList(cmd.Context(), client.CurrencySide(side))
			if err != nil {
				cmd.PrintErrln("Error: Unable to list currencies. Please check the logs for details.")
				log.Error().Err(err).Str("side", side).Msg("Failed to fetch currency list")
				return
			}

			table := newTable([]string{"Code", "Name"})
			for _, c := range currencies {
				table.Append([]string{c.Code, c.Name})
			}
			table.Render()
		},
	}

	cmd.Flags().StringVar(&side, "side", "buy", "Which list to fetch [buy, sell, payment]")

	return cmd
}

func fxDealsCmd(a *app) *cobra.Command {
	var fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "deals",
		Short: "List FX deals booked in a date range",
		Run: func(cmd *cobra.Command, args []string) {
			if err := requireSession(a); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			from, to, err := parseDateRange(fromFlag, toFlag)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			deals, err := a.api.SearchFXDeals(cmd.Context(), from, to)
			if err != nil {
				cmd.PrintErrln("Error: Unable to search FX deals. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to search FX deals")
				return
			}
			if len(deals) == 0 {
				cmd.Println("No FX deals in the selected period.")
				return
			}

			table := newTable([]string{"Deal ID", "Sold", "Bought", "Rate", "Status", "Trade date"})
			for _, d := range deals {
				table.Append([]string{
					d.DealID,
					formatAmount(d.SellAmount) + " " + d.SellCurrency,
					formatAmount(d.BuyAmount) + " " + d.BuyCurrency,
					formatAmount(d.Rate),
					d.Status,
					d.TradeDate,
				})
			}
			table.Render()
		},
	}

	addDateRangeFlags(cmd, &fromFlag, &toFlag)

	return cmd
}
