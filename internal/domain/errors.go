// internal/domain/errors.go
package domain

import "errors"

var (
	// ErrProductNotFound means a sale, write-off or stock record referenced
	// a product name that is not in the catalog. The write is refused.
	ErrProductNotFound = errors.New("product not found")

	// ErrUnknownSupplier means an edit referenced a supplier absent from
	// the recommendation being edited.
	ErrUnknownSupplier = errors.New("supplier not in recommendation")

	// ErrUnknownProduct means an edit referenced a product absent from the
	// supplier's entries in the recommendation being edited.
	ErrUnknownProduct = errors.New("product not in supplier order")

	// ErrMalformedEdit means an edit line could not be parsed into
	// supplier, product and quantity.
	ErrMalformedEdit = errors.New("malformed edit, expected \"Supplier: Product = quantity\"")

	// ErrNoActiveSession means an operator tried to edit without having
	// started an edit session.
	ErrNoActiveSession = errors.New("no active edit session")
)
