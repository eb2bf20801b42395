package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bizcurrency/bizcli/client"
	"github.com/bizcurrency/bizcli/pkg/validation"
)

func paymentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Create and manage instant payments",
	}

	cmd.AddCommand(
		paymentCreateCmd(a),
		paymentPostCmd(a),
		paymentSearchCmd(a),
	)

	return cmd
}

func paymentCreateCmd(a *app) *cobra.Command {
	var req client.PaymentRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an instant payment in draft state",
		Long:  "Create an instant payment in draft state. Use `bizcli payment post` to execute it.",
		Run: func(cmd *cobra.Command, args []string) {
			if err := requireSession(a); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validatePaymentRequest(req); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			payment, err := a.api.CreatePayment(cmd.Context(), req)
			if err != nil {
				cmd.PrintErrln("Error: Failed to create the payment. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to create payment")
				return
			}

			cmd.Printf("Payment %s created with status %s.\n", payment.PaymentID, payment.Status)
			cmd.Printf("Run `bizcli payment post %s` to execute it.\n", payment.PaymentID)
		},
	}

	cmd.Flags().StringVar(&req.DebitAccountID, "debit-account", "", "Account ID to debit")
	cmd.Flags().StringVar(&req.BeneficiaryName, "beneficiary-name", "", "Name of the beneficiary")
	cmd.Flags().StringVar(&req.BeneficiaryAccount, "beneficiary-account", "", "Account of the beneficiary")
	cmd.Flags().Float64Var(&req.Amount, "amount", 0, "Amount to pay")
	cmd.Flags().StringVar(&req.CurrencyCode, "currency", "", "Currency of the payment (e.g. USD)")
	cmd.Flags().StringVar(&req.Reference, "reference", "", "Payment reference shown to the beneficiary")

	return cmd
}

func validatePaymentRequest(req client.PaymentRequest) error {
	if err := validation.ValidateNonEmptyString("debit-account", req.DebitAccountID); err != nil {
		return err
	}
	if err := validation.ValidateNonEmptyString("beneficiary-name", req.BeneficiaryName); err != nil {
		return err
	}
	if err := validation.ValidateNonEmptyString("beneficiary-account", req.BeneficiaryAccount); err != nil {
		return err
	}
	if err := validation.ValidateAmount(req.Amount); err != nil {
		return err
	}
	return validation.ValidateCurrencyCode(req.CurrencyCode)
}

func paymentPostCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "post <payment-id>",
		Short: "Execute a previously created payment",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := requireSession(a); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			payment, err := a.api.PostPayment(cmd.Context(), args[0])
			if err != nil {
				cmd.PrintErrln("Error: Failed to post the payment. Please check the logs for details.")
				log.Error().Err(err).Str("payment_id", args[0]).Msg("Failed to post payment")
				return
			}

			cmd.Printf("Payment %s is now %s.\n", payment.PaymentID, payment.Status)
		},
	}
}

func paymentSearchCmd(a *app) *cobra.Command {
	var fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List payments created in a date range",
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

			payments, err := a.api.SearchPayments(cmd.Context(), from, to)
			if err != nil {
				cmd.PrintErrln("Error: Unable to search payments. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to search payments")
				return
			}
			if len(payments) == 0 {
				cmd.Println("No payments in the selected period.")
				return
			}

			table := newTable([]string{"Payment ID", "Status", "Beneficiary", "Amount", "Currency", "Created"})
			for _, p := range payments {
				table.Append([]string{
					p.PaymentID,
					p.Status,
					p.BeneficiaryName,
					formatAmount(p.Amount),
					p.CurrencyCode,
					p.CreatedAt,
				})
			}
			table.Render()
		},
	}

	addDateRangeFlags(cmd, &fromFlag, &toFlag)

	return cmd
}
