package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omnicart/crmbridge/internal/cli"
	"github.com/omnicart/crmbridge/internal/client"
	"github.com/omnicart/crmbridge/internal/schema"
)

var (
	paymentOrder   int
	paymentAmount  float64
	paymentType    string
	paymentStatus  string
	paymentPaidAt  string
	paymentComment string
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Work with CRM payments",
}

var paymentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Attach a payment to an order",
	Long: `Attach a payment to an existing order. The order must already exist
in the CRM.

Examples:
  crmctl payments create --order 10 --amount 99.90
  crmctl payments create --order 10 --amount 99.90 --type bank-card --status paid --paid-at 2024-02-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		envCfg, _, err := cli.GetEnvConfig(env, baseURL)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(envCfg.BaseURL)

		ref, err := c.CreatePayment(context.Background(), schema.PaymentCreate{
			OrderID: paymentOrder,
			Amount:  paymentAmount,
			Type:    schema.PaymentType(paymentType),
			Status:  schema.PaymentStatus(paymentStatus),
			PaidAt:  paymentPaidAt,
			Comment: paymentComment,
		})
		if err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		if !quiet {
			fmt.Printf("Successfully created payment with id %d for order %d\n", ref.ID, paymentOrder)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(paymentsCmd)
	paymentsCmd.AddCommand(paymentsCreateCmd)

	paymentsCreateCmd.Flags().IntVar(&paymentOrder, "order", 0, "Order ID (required)")
	paymentsCreateCmd.Flags().Float64Var(&paymentAmount, "amount", 0, "Payment amount (required)")
	paymentsCreateCmd.Flags().StringVar(&paymentType, "type", "", "Payment type (defaults to cash)")
	paymentsCreateCmd.Flags().StringVar(&paymentStatus, "status", "", "Payment status (defaults to not-paid)")
	paymentsCreateCmd.Flags().StringVar(&paymentPaidAt, "paid-at", "", "Payment date (YYYY-MM-DD)")
	paymentsCreateCmd.Flags().StringVar(&paymentComment, "comment", "", "Payment comment")
}
