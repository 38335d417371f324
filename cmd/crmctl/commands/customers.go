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
	customersListName        string
	customersListEmail       string
	customersListCreatedFrom string
	customersListCreatedTo   string
	customersListLimit       int
	customersListPage        int

	customerFirstName string
	customerLastName  string
	customerEmail     string
	customerPhones    []string
	customerBirthday  string
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Work with CRM customers",
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	Long: `List customers, optionally filtered by name, email or creation date.

Examples:
  crmctl customers list
  crmctl customers list --name John --limit 50
  crmctl customers list --created-from 2024-01-01 --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		envCfg, _, err := cli.GetEnvConfig(env, baseURL)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(envCfg.BaseURL)

		list, err := c.ListCustomers(context.Background(), schema.CustomerFilters{
			Name:          customersListName,
			Email:         customersListEmail,
			CreatedAtFrom: customersListCreatedFrom,
			CreatedAtTo:   customersListCreatedTo,
			Limit:         customersListLimit,
			Page:          customersListPage,
		})
		if err != nil {
			return fmt.Errorf("failed to list customers: %w", err)
		}

		if !quiet {
			if len(list.Customers) == 0 {
				fmt.Println("No customers found")
				return nil
			}
			return cli.PrintCustomers(list, cli.OutputFormat(format))
		}

		return nil
	},
}

var customersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a customer",
	Long: `Create a customer in the CRM.

Examples:
  crmctl customers create --first-name Alice
  crmctl customers create --first-name Alice --email alice@example.com --phone 123456`,
	RunE: func(cmd *cobra.Command, args []string) error {
		envCfg, _, err := cli.GetEnvConfig(env, baseURL)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(envCfg.BaseURL)

		ref, err := c.CreateCustomer(context.Background(), schema.CustomerCreate{
			FirstName: customerFirstName,
			LastName:  customerLastName,
			Email:     customerEmail,
			Phones:    customerPhones,
			Birthday:  customerBirthday,
		})
		if err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}

		if !quiet {
			fmt.Printf("Successfully created customer with id %d\n", ref.ID)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(customersCmd)
	customersCmd.AddCommand(customersListCmd)
	customersCmd.AddCommand(customersCreateCmd)

	customersListCmd.Flags().StringVar(&customersListName, "name", "", "Filter by name")
	customersListCmd.Flags().StringVar(&customersListEmail, "email", "", "Filter by email")
	customersListCmd.Flags().StringVar(&customersListCreatedFrom, "created-from", "", "Created on or after (YYYY-MM-DD)")
	customersListCmd.Flags().StringVar(&customersListCreatedTo, "created-to", "", "Created on or before (YYYY-MM-DD)")
	customersListCmd.Flags().IntVar(&customersListLimit, "limit", 0, "Page size (1-100)")
	customersListCmd.Flags().IntVar(&customersListPage, "page", 0, "Page number")

	customersCreateCmd.Flags().StringVar(&customerFirstName, "first-name", "", "First name (required)")
	customersCreateCmd.Flags().StringVar(&customerLastName, "last-name", "", "Last name")
	customersCreateCmd.Flags().StringVar(&customerEmail, "email", "", "Email address")
	customersCreateCmd.Flags().StringArrayVar(&customerPhones, "phone", nil, "Phone number (repeatable)")
	customersCreateCmd.Flags().StringVar(&customerBirthday, "birthday", "", "Birthday (YYYY-MM-DD)")
}
