package customers

import "github.com/google/uuid"

// CreateInput carries a new customer record.
type CreateInput struct {
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	Address   *string
	ActorID   uuid.UUID
}

// UpdateInput carries a full replacement of a customer's editable fields.
type UpdateInput struct {
	CustomerID uuid.UUID
	FirstName  string
	LastName   string
	Email      *string
	Phone      *string
	Address    *string
}
