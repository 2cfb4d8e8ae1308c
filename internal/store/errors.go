package store

import "fmt"

// ValidationError reports caller input rejected at the store boundary:
// empty names, unknown locations, negative target counts.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// NotFoundError reports that a referenced row no longer exists.
type NotFoundError struct {
	Kind string // "item" or "location"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// InvalidOperationError reports an operation that would violate an
// invariant, most commonly driving an item count below zero. The stored
// state is unchanged when this is returned.
type InvalidOperationError struct {
	ItemID int64
	Name   string
	Reason string
}

func (e *InvalidOperationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("cannot apply to %q (item %d): %s", e.Name, e.ItemID, e.Reason)
	}
	return fmt.Sprintf("invalid operation: %s", e.Reason)
}

// StorageError wraps failures of the underlying database. Fatal at
// startup; retryable during normal operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// storageErr wraps a driver error, passing nil through.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func itemNotFound(id int64) error {
	return &NotFoundError{Kind: "item", ID: fmt.Sprintf("%d", id)}
}

func locationNotFound(id string) error {
	return &NotFoundError{Kind: "location", ID: id}
}
