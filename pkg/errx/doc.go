// Package errx provides immutable, code-based error values.
//
// The package is built around a few pieces:
//   - Code: a stable string value with a description, a Severity, an
//     optional category and an optional documentation link
//   - Error: an occurrence of a Code with a message, ordered context
//     entries, a metadata bag, an optional inner error and a timestamp
//   - Registry: a concurrent map from code value to Code where every
//     value is registered at most once
//   - Bridge and Fault: conversion between plain Go errors or panics and
//     Error values, with a fallback code for anything unrecognized
//
// Error values never change. WithContext, WithMetadata and WithInnerError
// return derived values, so an Error can be shared between goroutines
// without synchronization.
//
// Failures of the package itself (blank arguments, duplicate codes,
// cancellation) are reported as plain errors matching ErrValidation,
// ErrConflict, ErrInvalidState, ErrCancelled or ErrInternal.
//
// Example usage:
//
//	registry := errx.NewRegistry()
//	notFound := errx.MustCode("ORD_404", "Order not found",
//		errx.WithSeverity(errx.SeverityWarning),
//		errx.WithCategory("Orders"))
//	if err := registry.Register(notFound); err != nil {
//		return err
//	}
//
//	e, err := errx.New(notFound, errx.WithMessage("order 42 does not exist"))
//	if err != nil {
//		return err
//	}
//	e, _ = e.WithContext("orderId", "42")
//
//	fmt.Println(errx.UserString(e))  // order 42 does not exist
//	fmt.Println(errx.DebugString(e)) // full debug details
package errx
