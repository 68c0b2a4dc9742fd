package mfdfa

import "errors"

// Errors returned by the analysis session.
var (
	// ErrInvalidInput indicates the input series holds no finite value.
	ErrInvalidInput = errors.New("mfdfa: input series has no finite values")
	// ErrInvalidParameter indicates an out-of-range scale, order, or q-order argument.
	ErrInvalidParameter = errors.New("mfdfa: invalid parameter")
	// ErrInvalidRange indicates a fit sub-range outside the computed scale set.
	ErrInvalidRange = errors.New("mfdfa: invalid fit range")
	// ErrNotComputed indicates the fluctuation matrix has not been computed yet.
	ErrNotComputed = errors.New("mfdfa: fluctuations not computed")
	// ErrNotFitted indicates no scaling fit has been performed yet.
	ErrNotFitted = errors.New("mfdfa: fluctuations not fitted")
	// ErrInsufficientOrders indicates a spectrum was requested with fewer than two q-orders.
	ErrInsufficientOrders = errors.New("mfdfa: multifractal spectrum needs at least two q-orders")
)
