package store

import (
	"fmt"

	"watchstore/domain"
)

// NewOrderStore constructs a domain.OrderStore by kind: "memory" or
// "postgres". For postgres, provide the connection string in databaseURL;
// for memory, databaseURL is ignored.
func NewOrderStore(kind, databaseURL string) (domain.OrderStore, error) {
	switch kind {
	case "memory", "mem":
		return NewInMemoryOrders(), nil
	case "postgres", "pg":
		if databaseURL == "" {
			return nil, fmt.Errorf("database url required for postgres store")
		}
		return NewPGOrders(databaseURL)
	default:
		return nil, fmt.Errorf("unknown store kind: %s", kind)
	}
}
