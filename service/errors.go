package service

import "errors"

// ErrInvalidSignature is returned when payment verification fails. The fee
// commit fails closed: no booking or ledger write happens on this error.
var ErrInvalidSignature = errors.New("invalid payment signature")

// ErrInvalidStatus is returned for a status value an operation does not
// accept.
var ErrInvalidStatus = errors.New("invalid status")

// ErrMissingField is returned when a write payload lacks a required field.
var ErrMissingField = errors.New("missing required field")
