package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	baseURL string
	env     string
	format  string
	quiet   bool
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "crmctl",
	Short: "CLI tool for the crmbridge API",
	Long: `Crmctl is a command-line tool for working with customers, orders and
payments through the crmbridge service.

It provides commands for listing and creating customers, listing a
customer's orders, creating orders and attaching payments to them.

Examples:
  crmctl customers list --name John
  crmctl customers create --first-name Alice --email alice@example.com
  crmctl orders list 42
  crmctl orders create --number ORD-1 --customer 42 --items '[{"quantity":1,"productName":"Widget"}]'
  crmctl payments create --order 10 --amount 99.90 --type bank-card`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL of the crmbridge API")
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "Environment (dev, staging, prod)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
}
