package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"chocshop/internal/models"
	"chocshop/internal/services"
)

// renderChocolates prints the catalog as a table.
func renderChocolates(w io.Writer, chocolates []models.Chocolate) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Chocolate ID", "Type", "Price"})
	for _, c := range chocolates {
		table.Append([]string{
			fmt.Sprintf("%d", c.ChocID),
			c.Type,
			fmt.Sprintf("%.2f", c.Price),
		})
	}
	table.Render()
}

// renderOrders prints order summaries as a table.
func renderOrders(w io.Writer, orders []models.OrderSummary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Order ID", "Customer", "Order Date", "Subtotal"})
	for _, o := range orders {
		table.Append([]string{
			fmt.Sprintf("%d", o.OrderID),
			o.Customer,
			o.OrderDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", o.Subtotal),
		})
	}
	table.Render()
}

// renderOrderItems prints an order's items as a table.
func renderOrderItems(w io.Writer, items []models.OrderItemDetail) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Item ID", "Order ID", "Chocolate Type", "Quantity"})
	for _, item := range items {
		table.Append([]string{
			fmt.Sprintf("%d", item.ItemID),
			fmt.Sprintf("%d", item.OrderID),
			item.Chocolate,
			fmt.Sprintf("%d", item.Quantity),
		})
	}
	table.Render()
}

// renderCustomers prints customer records as a table.
func renderCustomers(w io.Writer, customers []models.Customer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Customer ID", "Name", "Email Address"})
	for _, c := range customers {
		table.Append([]string{
			fmt.Sprintf("%d", c.CustID),
			c.Name,
			c.Email,
		})
	}
	table.Render()
}

// renderCartLines prints the staged cart for the commit confirmation.
func renderCartLines(w io.Writer, lines []services.CartLine) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Chocolate ID", "Quantity", "Unit Price"})
	for _, line := range lines {
		table.Append([]string{
			fmt.Sprintf("%d", line.ChocID),
			fmt.Sprintf("%d", line.Quantity),
			fmt.Sprintf("%.2f", line.UnitPrice),
		})
	}
	table.Render()
}
