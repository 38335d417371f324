package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/omnicart/crmbridge/internal/cli"
	"github.com/omnicart/crmbridge/internal/client"
	"github.com/omnicart/crmbridge/internal/schema"
)

var (
	ordersListLimit int
	ordersListPage  int

	orderNumber   string
	orderCustomer int
	orderItems    string
	orderType     string
	orderMethod   string
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Work with CRM orders",
}

var ordersListCmd = &cobra.Command{
	Use:   "list <customerID>",
	Short: "List a customer's orders",
	Long: `List the orders that belong to one customer.

Examples:
  crmctl orders list 42
  crmctl orders list 42 --limit 10 --page 2 --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("customerID must be an integer: %w", err)
		}

		envCfg, _, err := cli.GetEnvConfig(env, baseURL)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(envCfg.BaseURL)

		list, err := c.ListCustomerOrders(context.Background(), customerID, ordersListLimit, ordersListPage)
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}

		if !quiet {
			if len(list.Orders) == 0 {
				fmt.Println("No orders found")
				return nil
			}
			return cli.PrintOrders(list, cli.OutputFormat(format))
		}

		return nil
	},
}

var ordersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an order",
	Long: `Create an order for an existing customer. Items are passed as a JSON array.

Examples:
  crmctl orders create --number ORD-1 --customer 42 --items '[{"quantity":1,"productName":"Widget","initialPrice":9.9}]'
  crmctl orders create --number ORD-2 --customer 42 --items @items.json --method shopping-cart`,
	RunE: func(cmd *cobra.Command, args []string) error {
		envCfg, _, err := cli.GetEnvConfig(env, baseURL)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		var items []schema.OrderItem
		if orderItems != "" {
			if err := json.Unmarshal([]byte(orderItems), &items); err != nil {
				return fmt.Errorf("invalid items JSON: %w", err)
			}
		}

		c := client.NewClient(envCfg.BaseURL)

		order, err := c.CreateOrder(context.Background(), schema.OrderCreate{
			Number:      orderNumber,
			Customer:    schema.CustomerRef{ID: orderCustomer},
			Items:       items,
			OrderType:   schema.OrderType(orderType),
			OrderMethod: schema.OrderMethod(orderMethod),
		})
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if !quiet {
			fmt.Printf("Successfully created order '%s' with id %d\n", order.Number, order.ID)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersCreateCmd)

	ordersListCmd.Flags().IntVar(&ordersListLimit, "limit", 0, "Page size (1-100)")
	ordersListCmd.Flags().IntVar(&ordersListPage, "page", 0, "Page number")

	ordersCreateCmd.Flags().StringVar(&orderNumber, "number", "", "Order number (required)")
	ordersCreateCmd.Flags().IntVar(&orderCustomer, "customer", 0, "Customer ID (required)")
	ordersCreateCmd.Flags().StringVar(&orderItems, "items", "", "Order items as a JSON array (required)")
	ordersCreateCmd.Flags().StringVar(&orderType, "type", "", "Order type (defaults to main)")
	ordersCreateCmd.Flags().StringVar(&orderMethod, "method", "", "Order method (defaults to phone)")
}
