package services

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrAlreadyRegistered is returned by SignUp for an email already on file.
	ErrAlreadyRegistered = errors.New("email already registered")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnauthenticated is returned for cart and checkout calls without an identity.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrNotFound is returned for a missing product, user or cart entry.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPrice is returned by Charge for a price the processor cannot
	// be asked to bill. It is a kind of ErrNotFound.
	ErrInvalidPrice = fmt.Errorf("price out of range: %w", ErrNotFound)
)

// MaxPrice is the largest declared price, in whole units, whose amount in
// minor units still fits an int64.
const MaxPrice int64 = math.MaxInt64 / 100

// PaymentError is returned when a charge did not succeed. Status is the
// processor's charge status, or "error" when the processor could not be
// reached or rejected the request outright.
type PaymentError struct {
	Status string
	Err    error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment was not successful (%s): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("payment was not successful (%s)", e.Status)
}

func (e *PaymentError) Unwrap() error { return e.Err }
