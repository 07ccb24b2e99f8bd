package models

import "errors"

var (
	// ErrNotFound is returned when a referenced customer, chocolate or
	// order does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidQuantity is returned for a cart line with quantity <= 0.
	ErrInvalidQuantity = errors.New("quantity must be more than zero")
	// ErrEmptyCart is returned when a commit is attempted with no staged items.
	ErrEmptyCart = errors.New("cart has no items")
	// ErrUnknownCustomer is returned when a commit names a customer that
	// does not exist.
	ErrUnknownCustomer = errors.New("no customer with the given ID exists")
	// ErrCustomerHasOrders blocks customer deletion while orders reference
	// the customer.
	ErrCustomerHasOrders = errors.New("customer has existing orders")
	// ErrEmailTaken is returned when a customer email is already in use.
	ErrEmailTaken = errors.New("email is already in use")
	// ErrInvalidCredentials is returned on a failed staff login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
