package model

import "github.com/m-mizutani/goerr/v2"

// ErrEmptyOwner is returned when a store operation is attempted without an owner
var ErrEmptyOwner = goerr.New("owner ID is required")

// OwnerID identifies the user that owns a record. It is the only access-control
// predicate for every collection.
type OwnerID string

// Validate checks that the owner ID is set
func (o OwnerID) Validate() error {
	if o == "" {
		return ErrEmptyOwner
	}
	return nil
}

func (o OwnerID) String() string {
	return string(o)
}
