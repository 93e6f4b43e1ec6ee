// Package constraints provides type constraints shared across the module.
package constraints

// Byteseq represents a generic byte string.
type Byteseq interface {
	~string | ~[]byte
}
