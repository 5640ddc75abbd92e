package pricing

import "errors"

var (
	// ErrInvalidCostBasis is returned for negative or non-finite costs, rates
	// or results. It is fatal to the single computation only.
	ErrInvalidCostBasis = errors.New("invalid cost basis")

	// ErrUnrecognizedConfigShape means a config item carries none of the
	// recognized keys. The stored base price is kept as is.
	ErrUnrecognizedConfigShape = errors.New("unrecognized config shape")

	// ErrUnknownCostType is returned for items that are neither fixed nor config.
	ErrUnknownCostType = errors.New("unknown cost type")
)
