package retailcrm

import "fmt"

const (
	epCustomersList   = "/customers"
	epCustomersCreate = "/customers/create"
	epOrdersList      = "/orders"
	epOrdersCreate    = "/orders/create"
	epPaymentsCreate  = "/orders/payments/create"
)

func orderEndpoint(orderID int) string {
	return fmt.Sprintf("/orders/%d", orderID)
}
