package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"chocshop/internal/models"
	"chocshop/internal/services"
)

// Shell is the interactive text-menu front end. It owns all prompting
// and rendering; the services consume already-typed values only.
type Shell struct {
	in         *bufio.Scanner
	out        io.Writer
	auth       *services.AuthService
	chocolates *services.ChocolateService
	customers  *services.CustomerService
	orders     *services.OrderService
	cart       *services.CartService
}

// NewShell creates a new Shell reading from in and writing to out.
func NewShell(in io.Reader, out io.Writer, auth *services.AuthService, chocolates *services.ChocolateService, customers *services.CustomerService, orders *services.OrderService, cart *services.CartService) *Shell {
	return &Shell{
		in:         bufio.NewScanner(in),
		out:        out,
		auth:       auth,
		chocolates: chocolates,
		customers:  customers,
		orders:     orders,
		cart:       cart,
	}
}

// Login authenticates an operator, bootstrapping the first account when
// none exist. Returns false when the operator quits instead.
func (s *Shell) Login() bool {
	hasAccounts, err := s.auth.HasAccounts()
	if err != nil {
		log.Errorf("Failed to check staff accounts: %v", err)
		return false
	}
	if !hasAccounts {
		fmt.Fprintln(s.out, "No staff accounts exist yet. Create the first operator account.")
		if !s.registerFirstOperator() {
			return false
		}
	}

	for {
		username := s.prompt("Enter your username (or 'q' to quit): ")
		if strings.EqualFold(username, "q") {
			fmt.Fprintln(s.out, "Exiting program.")
			return false
		}
		password := s.prompt("Enter your password: ")

		token, err := s.auth.Login(username, password)
		if err != nil {
			fmt.Fprintln(s.out, "Invalid username or password. Please try again.")
			continue
		}
		if _, err := s.auth.ValidateToken(token); err != nil {
			log.Errorf("Session token rejected: %v", err)
			continue
		}
		fmt.Fprintln(s.out, "Login successful!")
		return true
	}
}

func (s *Shell) registerFirstOperator() bool {
	for {
		staff := &models.Staff{
			Username: s.prompt("Choose a username (or 'q' to quit): "),
		}
		if strings.EqualFold(staff.Username, "q") {
			return false
		}
		staff.Email = s.prompt("Enter your email: ")
		staff.Password = s.prompt("Choose a password: ")

		if err := s.auth.Register(staff); err != nil {
			fmt.Fprintf(s.out, "Could not create the account: %v\n", err)
			continue
		}
		fmt.Fprintln(s.out, "Operator account created.")
		return true
	}
}

// Run drives the main menu until the operator quits.
func (s *Shell) Run() {
	fmt.Fprintln(s.out, "\nWelcome to the Choc Shop!")

	for {
		fmt.Fprintln(s.out, "\n1. View chocolates")
		fmt.Fprintln(s.out, "2. Place order")
		fmt.Fprintln(s.out, "3. Add new customer")
		fmt.Fprintln(s.out, "4. Search/Edit/Delete customer")
		fmt.Fprintln(s.out, "5. View/Edit/Delete orders")
		choice := s.prompt("Enter your choice (or 'q' to quit): ")

		switch {
		case choice == "1":
			s.viewChocolates()
		case choice == "2":
			s.placeOrder(0)
		case choice == "3":
			s.addCustomer()
		case choice == "4":
			s.searchCustomers()
		case choice == "5":
			s.viewOrders()
		case strings.EqualFold(choice, "q"):
			return
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}
	}
}

func (s *Shell) viewChocolates() {
	chocolates, err := s.chocolates.GetAllChocolates()
	if err != nil {
		log.Errorf("Failed to list chocolates: %v", err)
		fmt.Fprintln(s.out, "Could not retrieve the catalog.")
		return
	}
	renderChocolates(s.out, chocolates)
}

// placeOrder builds a cart for a customer and commits it on confirmation.
// A custID of 0 means the customer still has to be chosen.
func (s *Shell) placeOrder(custID uint) {
	for custID == 0 {
		id, quit := s.promptID("Enter customer ID (or 'q' to finish): ")
		if quit {
			return
		}
		if _, err := s.customers.GetCustomer(id); err != nil {
			fmt.Fprintln(s.out, "No customer with the given ID exists")
			continue
		}
		custID = id
	}

	s.viewChocolates()

	for {
		chocID, quit := s.promptID("Enter chocolate ID (or 'q' to finish): ")
		if quit {
			break
		}

		quantity, quit := s.promptQuantity()
		if quit {
			break
		}

		if _, err := s.cart.AddItem(chocID, quantity); err != nil {
			switch {
			case errors.Is(err, models.ErrNotFound):
				fmt.Fprintln(s.out, "No chocolate with the given ID exists, please reenter")
			case errors.Is(err, models.ErrInvalidQuantity):
				fmt.Fprintln(s.out, "Quantity must be more than zero")
			default:
				log.Errorf("Failed to add item: %v", err)
				fmt.Fprintln(s.out, "Could not add the item. Please try again.")
			}
			continue
		}

		if !s.promptYesNo("Would you like to add another product? (y/n): ") {
			break
		}
	}

	lines := s.cart.Items()
	if len(lines) == 0 {
		fmt.Fprintln(s.out, "Nothing to commit.")
		return
	}

	fmt.Fprintln(s.out, "\nItems added to order:")
	renderCartLines(s.out, lines)

	if !s.promptYesNo("Do you want to commit the order to the database? (y/n): ") {
		s.cart.Discard()
		fmt.Fprintln(s.out, "Order not committed.")
		return
	}

	order, err := s.cart.Commit(custID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyCart):
			fmt.Fprintln(s.out, "Nothing to commit.")
		case errors.Is(err, models.ErrUnknownCustomer):
			fmt.Fprintln(s.out, "No customer with the given ID exists")
		default:
			log.Errorf("Failed to commit order: %v", err)
			fmt.Fprintln(s.out, "Operation failed, no changes made.")
		}
		// Drop the staged lines so the next order starts empty.
		s.cart.Discard()
		return
	}
	fmt.Fprintf(s.out, "Order %d committed to the database. Subtotal: %.2f\n", order.OrderID, order.Subtotal)
}

func (s *Shell) addCustomer() {
	for {
		customer := &models.Customer{
			Name:    s.prompt("Enter customer name: "),
			Email:   s.prompt("Enter customer email: "),
			Phone:   s.prompt("Enter customer phone: "),
			Address: s.prompt("Enter customer address: "),
			ZipCode: s.prompt("Enter customer zip code: "),
		}

		if err := s.customers.AddCustomer(customer); err != nil {
			if errors.Is(err, models.ErrEmailTaken) {
				fmt.Fprintln(s.out, "This email is already in use. Please try again with a different email.")
				continue
			}
			fmt.Fprintf(s.out, "An error occurred: %v\nPlease try again.\n", err)
			continue
		}
		fmt.Fprintln(s.out, "Customer added successfully.")
		return
	}
}

func (s *Shell) searchCustomers() {
	term := s.prompt("Enter a name, email, or ID to search (or 'all' to view all customers): ")
	if strings.EqualFold(term, "q") {
		return
	}

	results, err := s.customers.SearchCustomers(term)
	if err != nil {
		log.Errorf("Customer search failed: %v", err)
		fmt.Fprintln(s.out, "Could not search customers.")
		return
	}
	if len(results) == 0 {
		fmt.Fprintln(s.out, "No customers found.")
		return
	}
	renderCustomers(s.out, results)

	for {
		id, quit := s.promptID("Enter a customer ID from the results (or 'q' to quit): ")
		if quit {
			return
		}
		var selected *models.Customer
		for i := range results {
			if results[i].CustID == id {
				selected = &results[i]
				break
			}
		}
		if selected == nil {
			fmt.Fprintln(s.out, "Invalid ID. Please enter a customer ID from the results.")
			continue
		}
		s.customerMenu(*selected)
		return
	}
}

func (s *Shell) customerMenu(customer models.Customer) {
	for {
		orderCount, err := s.customers.CountOrders(customer.CustID)
		if err != nil {
			log.Errorf("Failed to count orders: %v", err)
		}

		fmt.Fprintf(s.out, "\nCustomer Information:\nID: %d\nName: %s\nEmail: %s\n", customer.CustID, customer.Name, customer.Email)
		fmt.Fprintf(s.out, "Number of Orders: %d\n", orderCount)
		fmt.Fprintln(s.out, "\n1. Place Order\n2. View Orders\n3. Edit customer\n4. Delete customer\n5. Return to main menu")
		choice := s.prompt("Enter your choice: ")

		switch choice {
		case "1":
			s.placeOrder(customer.CustID)
		case "2":
			s.ordersByCustomer(customer.CustID)
		case "3":
			s.editCustomer(customer.CustID)
			if updated, err := s.customers.GetCustomer(customer.CustID); err == nil {
				customer = *updated
			}
		case "4":
			if s.deleteCustomer(customer.CustID) {
				return
			}
		case "5":
			return
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}
	}
}

// ordersByCustomer lists a customer's orders. A single result can be
// viewed or deleted directly; multiple results need an order ID first.
func (s *Shell) ordersByCustomer(custID uint) {
	orders, err := s.orders.ListByCustomer(custID)
	if err != nil {
		log.Errorf("Failed to list orders for customer %d: %v", custID, err)
		fmt.Fprintln(s.out, "Could not retrieve orders.")
		return
	}
	if len(orders) == 0 {
		fmt.Fprintln(s.out, "No orders found.")
		return
	}
	renderOrders(s.out, orders)

	if len(orders) == 1 {
		s.orderMenu(orders[0].OrderID)
		return
	}

	id, quit := s.promptID("Multiple orders found. Please enter the order ID: ")
	if quit {
		return
	}
	s.showOrder(id)
}

func (s *Shell) viewOrders() {
	raw := s.prompt("Search by order number, Customer name, Order date or enter 'all' to see all orders: ")

	result, err := s.orders.Search(raw)
	if err != nil {
		log.Errorf("Order search failed: %v", err)
		fmt.Fprintln(s.out, "Could not search orders.")
		return
	}
	if result.Kind == services.SearchQuit {
		return
	}
	if len(result.Orders) == 0 {
		fmt.Fprintln(s.out, "No orders found.")
		return
	}

	if result.Kind == services.SearchByID {
		s.showOrder(result.Orders[0].OrderID)
		return
	}

	renderOrders(s.out, result.Orders)

	id, quit := s.promptID("Enter the ID of the order you want to view (or 'q' to return): ")
	if quit {
		return
	}
	s.showOrder(id)
}

func (s *Shell) showOrder(id uint) {
	order, err := s.orders.GetOrder(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			fmt.Fprintln(s.out, "No order found.")
		} else {
			log.Errorf("Failed to get order %d: %v", id, err)
			fmt.Fprintln(s.out, "Could not retrieve the order.")
		}
		return
	}

	fmt.Fprintf(s.out, "\nOrder Date: %s\nOrder ID: %d\nCustomer Name: %s\nSubtotal: %.2f\n",
		order.OrderDate.Format("2006-01-02"), order.OrderID, order.Customer, order.Subtotal)

	items, err := s.orders.GetOrderItems(id)
	if err != nil {
		log.Errorf("Failed to get items for order %d: %v", id, err)
		return
	}
	if len(items) == 0 {
		fmt.Fprintln(s.out, "No items found for this order.")
	}
	renderOrderItems(s.out, items)

	s.orderMenu(id)
}

func (s *Shell) orderMenu(orderID uint) {
	for {
		fmt.Fprintln(s.out, "d. Delete order")
		fmt.Fprintln(s.out, "q. Return")
		choice := s.prompt("Enter your choice: ")
		switch strings.ToLower(choice) {
		case "d":
			if s.deleteOrder(orderID) {
				return
			}
		case "q":
			return
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}
	}
}

// deleteOrder runs the confirmed cascade delete. Returns true when the
// order was removed.
func (s *Shell) deleteOrder(orderID uint) bool {
	outcome, err := s.orders.DeleteOrder(orderID, func(order models.OrderSummary, items []models.OrderItemDetail) bool {
		fmt.Fprintf(s.out, "\nOrder Information:\nID: %d\nDate: %s\nCustomer: %s\n",
			order.OrderID, order.OrderDate.Format("2006-01-02"), order.Customer)
		fmt.Fprintln(s.out, "\nOrder Items:")
		renderOrderItems(s.out, items)
		return s.promptYesNo("Are you sure you want to delete this order? (y/n): ")
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			fmt.Fprintln(s.out, "No order found with the given ID.")
		} else {
			log.Errorf("Failed to delete order %d: %v", orderID, err)
			fmt.Fprintln(s.out, "Operation failed, no changes made.")
		}
		return false
	}
	if outcome == services.DeleteDone {
		fmt.Fprintln(s.out, "Order deleted successfully.")
		return true
	}
	fmt.Fprintln(s.out, "Deletion cancelled.")
	return false
}

func (s *Shell) editCustomer(custID uint) {
	customer, err := s.customers.GetCustomer(custID)
	if err != nil {
		fmt.Fprintln(s.out, "No customer with the given ID exists")
		return
	}

	fmt.Fprintf(s.out, "\nAre you sure you want to edit the following customer?\n\nID: %d\nName: %s\nEmail: %s\n",
		customer.CustID, customer.Name, customer.Email)
	if !s.promptYesNo("Enter 'y' to confirm, 'n' to cancel: ") {
		fmt.Fprintln(s.out, "Edit cancelled.")
		return
	}

	for {
		newName := s.prompt("Enter new name: ")
		newEmail := s.prompt("Enter new email: ")

		fmt.Fprintf(s.out, "\nOld Information:\nID: %d\nName: %s\nEmail: %s\n", customer.CustID, customer.Name, customer.Email)
		fmt.Fprintf(s.out, "\nNew Information:\nID: %d\nName: %s\nEmail: %s\n", customer.CustID, newName, newEmail)

		choice := s.prompt("Is this information correct? Enter 'y' for yes, 'n' to re-enter information, 'q' to quit: ")
		if strings.EqualFold(choice, "q") {
			return
		}
		if !strings.EqualFold(choice, "y") {
			continue
		}

		if err := s.customers.EditCustomer(custID, newName, newEmail); err != nil {
			if errors.Is(err, models.ErrEmailTaken) {
				fmt.Fprintln(s.out, "This email is already in use. Please try again with a different email.")
				continue
			}
			fmt.Fprintf(s.out, "An error occurred: %v\n", err)
			return
		}
		fmt.Fprintln(s.out, "Customer updated successfully.")
		return
	}
}

// deleteCustomer runs the confirmed customer delete. Returns true when
// the customer was removed.
func (s *Shell) deleteCustomer(custID uint) bool {
	outcome, err := s.customers.DeleteCustomer(custID, func(customer models.Customer) bool {
		fmt.Fprintf(s.out, "Are you sure you want to delete the following customer?\nID: %d\nName: %s\nEmail: %s\n",
			customer.CustID, customer.Name, customer.Email)
		return s.promptYesNo("Enter 'y' to confirm, 'n' to cancel: ")
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrCustomerHasOrders):
			fmt.Fprintln(s.out, "Cannot delete customer because they have existing orders.")
		case errors.Is(err, models.ErrNotFound):
			fmt.Fprintln(s.out, "No customer found with the provided ID.")
		default:
			log.Errorf("Failed to delete customer %d: %v", custID, err)
			fmt.Fprintln(s.out, "Operation failed, no changes made.")
		}
		return false
	}
	if outcome == services.DeleteDone {
		fmt.Fprintln(s.out, "Customer deleted successfully.")
		return true
	}
	fmt.Fprintln(s.out, "Deletion cancelled.")
	return false
}

// prompt prints the label and reads one trimmed line.
func (s *Shell) prompt(label string) string {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "q"
	}
	return strings.TrimSpace(s.in.Text())
}

// promptYesNo keeps asking until the operator answers y or n.
func (s *Shell) promptYesNo(label string) bool {
	for {
		switch strings.ToLower(s.prompt(label)) {
		case "y":
			return true
		case "n":
			return false
		default:
			fmt.Fprintln(s.out, "Invalid input. Please enter 'y' or 'n'.")
		}
	}
}

// promptID reads a numeric identifier; quit reports the 'q' sentinel.
func (s *Shell) promptID(label string) (id uint, quit bool) {
	for {
		raw := s.prompt(label)
		if strings.EqualFold(raw, "q") {
			return 0, true
		}
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a numeric ID.")
			continue
		}
		return uint(parsed), false
	}
}

// promptQuantity reads a strictly positive quantity; quit reports the
// 'q' sentinel. Non-positive values re-prompt so the cart guard is only
// a backstop.
func (s *Shell) promptQuantity() (quantity int, quit bool) {
	for {
		raw := s.prompt("Enter quantity (or 'q' to finish): ")
		if strings.EqualFold(raw, "q") {
			return 0, true
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a number.")
			continue
		}
		if parsed <= 0 {
			fmt.Fprintln(s.out, "Quantity must be more than zero")
			continue
		}
		return parsed, false
	}
}
