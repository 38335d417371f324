package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/omnicart/crmbridge/internal/schema"
)

// OutputFormat specifies the output format for CLI commands
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// PrintCustomers outputs a customer listing in the specified format
func PrintCustomers(list *schema.CustomersList, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(list)
	case FormatYAML:
		return printYAML(list)
	case FormatTable:
		return printCustomersTable(list.Customers)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintOrders outputs an order listing in the specified format
func PrintOrders(list *schema.OrdersList, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(list)
	case FormatYAML:
		return printYAML(list)
	case FormatTable:
		return printOrdersTable(list.Orders)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintOrder outputs a single order in the specified format
func PrintOrder(order *schema.Order, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(order)
	case FormatYAML:
		return printYAML(order)
	case FormatTable:
		return printOrdersTable([]schema.Order{*order})
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(data)
}

func printCustomersTable(customers []schema.Customer) error {
	table := tablewriter.NewWriter(os.Stdout)

	table.Header("ID", "First Name", "Last Name", "Email", "Phones", "Birthday")

	for _, c := range customers {
		table.Append(
			fmt.Sprintf("%d", c.ID),
			c.FirstName,
			c.LastName,
			c.Email,
			strings.Join(c.Phones, ", "),
			c.Birthday,
		)
	}

	return table.Render()
}

func printOrdersTable(orders []schema.Order) error {
	table := tablewriter.NewWriter(os.Stdout)

	table.Header("ID", "Number", "Customer", "Items", "Total", "Created At")

	for _, o := range orders {
		customer := o.Customer.FirstName
		if o.Customer.LastName != "" {
			customer += " " + o.Customer.LastName
		}

		table.Append(
			fmt.Sprintf("%d", o.ID),
			o.Number,
			customer,
			fmt.Sprintf("%d", len(o.Items)),
			fmt.Sprintf("%.2f", o.TotalAmount),
			o.CreatedAt,
		)
	}

	return table.Render()
}
