// Package repository persists bookings and the member ledger in MongoDB.
// Booking collections are partitioned by calendar month; the ledger is a
// single canonical collection.
package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a booking or member required by an operation
// does not exist. Handlers translate it into an HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a create collides with an existing record,
// such as registering a member twice. Handlers translate it into 409.
var ErrConflict = errors.New("conflict")

// ErrStoreUnavailable is returned when the underlying store is unreachable.
// Handlers translate it into 503.
var ErrStoreUnavailable = errors.New("store unavailable")

func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
