package tilesurface

import "errors"

var (
	// ErrInvalidConfiguration is returned by Create for an unsupported
	// buffer count or pixel format. The surface is left unchanged.
	ErrInvalidConfiguration = errors.New("tilesurface: invalid configuration")

	// ErrFrameTooLarge is the panic value when the requested buffer size
	// cannot be represented. Allocation failure is not recoverable.
	ErrFrameTooLarge = errors.New("tilesurface: frame too large")
)
