package pct

import (
	"braces.dev/errtrace"
)

// EString is an owned, growable percent-encoded buffer bound to one grammar
// table. Content is appended through encoding operations that keep the
// buffer valid for the bound context at all times.
//
// An EString is exclusively owned by its constructing goroutine until
// finalized with [EString.EStr]; it must not be shared while mutable.
type EString struct {
	buf []byte
	tbl *Table
}

// NewEString creates an empty EString bound to the given table.
func NewEString(t *Table) *EString {
	return &EString{tbl: t}
}

// Table returns the table the buffer is bound to.
func (e *EString) Table() *Table { return e.tbl }

// EncodeString percent-encodes s into the buffer: bytes not allowed by the
// bound table become triplets. A substring that already forms a valid
// percent triplet passes through unchanged when the table allows encoded
// octets, so pre-encoded fragments may be appended safely.
func (e *EString) EncodeString(s string) *EString {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && e.tbl.allowsEnc && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			e.buf = append(e.buf, s[i], s[i+1], s[i+2])
			i += 2
			continue
		}
		if e.tbl.Allows(c) {
			e.buf = append(e.buf, c)
			continue
		}
		e.buf = append(e.buf, '%', upperhex[c>>4], upperhex[c&15])
	}
	return e
}

// EncodeBytes is like [EString.EncodeString] for a byte slice.
func (e *EString) EncodeBytes(b []byte) *EString {
	return e.EncodeString(string(b))
}

// WriteByteLit appends a single data byte, percent-encoding it when the
// bound table does not allow it unencoded.
func (e *EString) WriteByteLit(c byte) *EString {
	if e.tbl.Allows(c) {
		e.buf = append(e.buf, c)
		return e
	}
	e.buf = append(e.buf, '%', upperhex[c>>4], upperhex[c&15])
	return e
}

// AppendEStr appends already-encoded text. It fails with [ErrInvalidText]
// when s is not valid for the bound table.
func (e *EString) AppendEStr(s EStr) error {
	if !Validate(string(s), e.tbl) {
		return errtrace.Wrap(ErrInvalidText)
	}
	e.buf = append(e.buf, s...)
	return nil
}

// EStr finalizes the current content into an immutable [EStr].
// The buffer remains usable afterwards; the returned value does not alias it.
func (e *EString) EStr() EStr { return EStr(string(e.buf)) }

// String returns a copy of the current content.
func (e *EString) String() string { return string(e.buf) }

// Len returns the current content length in bytes.
func (e *EString) Len() int { return len(e.buf) }

// IsEmpty reports whether the buffer is empty.
func (e *EString) IsEmpty() bool { return len(e.buf) == 0 }

// Reset truncates the buffer, keeping its capacity and bound table.
func (e *EString) Reset() *EString {
	e.buf = e.buf[:0]
	return e
}

// Grow ensures capacity for n more bytes.
func (e *EString) Grow(n int) *EString {
	if cap(e.buf)-len(e.buf) < n {
		nb := make([]byte, len(e.buf), len(e.buf)+n)
		copy(nb, e.buf)
		e.buf = nb
	}
	return e
}
