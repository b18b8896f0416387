package document

import "fmt"

// UnknownCollectionError is returned when a requested collection isn't in the catalog.
type UnknownCollectionError struct {
	ID string
}

func (e *UnknownCollectionError) Error() string {
	return fmt.Sprintf("unknown collection %q", e.ID)
}
