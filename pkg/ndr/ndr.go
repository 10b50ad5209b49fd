// Package ndr provides Network Data Representation encoding/decoding helpers
// for building DCE/RPC stubs and parsing their responses.
package ndr

import (
	"errors"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
)

// ErrUnderflow is returned when a read runs past the end of the stub
var ErrUnderflow = errors.New("ndr: buffer underflow")

// Reader provides sequential reading of NDR-encoded data
type Reader struct {
	data   []byte
	offset int
}

// NewReader creates an NDR reader
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns bytes left to read
func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}

// Offset returns the current read position
func (r *Reader) Offset() int {
	return r.offset
}

// Skip advances the offset
func (r *Reader) Skip(n int) error {
	if n < 0 || r.offset+n > len(r.data) {
		return fmt.Errorf("%w: skip %d at %d", ErrUnderflow, n, r.offset)
	}
	r.offset += n
	return nil
}

// Align aligns to n-byte boundary
func (r *Reader) Align(n int) {
	if n > 0 && r.offset%n != 0 {
		r.offset += n - (r.offset % n)
	}
}

// ReadUint32 reads an aligned little-endian uint32
func (r *Reader) ReadUint32() (uint32, error) {
	r.Align(4)
	if r.offset+4 > len(r.data) {
		return 0, fmt.Errorf("%w: uint32 at %d", ErrUnderflow, r.offset)
	}
	v := encoding.Uint32LE(r.data[r.offset:])
	r.offset += 4
	return v, nil
}

// ReadBytes reads n bytes
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.offset+n > len(r.data) {
		return nil, fmt.Errorf("%w: %d bytes at %d", ErrUnderflow, n, r.offset)
	}
	data := make([]byte, n)
	copy(data, r.data[r.offset:r.offset+n])
	r.offset += n
	return data, nil
}

// ReadPointer reads a referent ID and returns true if non-null
func (r *Reader) ReadPointer() (bool, error) {
	ptr, err := r.ReadUint32()
	if err != nil {
		return false, err
	}
	return ptr != 0, nil
}

// ReadConformantBytes reads a conformant byte array (max count + data).
// The reader is left 4-byte aligned.
func (r *Reader) ReadConformantBytes() ([]byte, error) {
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	data, err := r.ReadBytes(int(count))
	if err != nil {
		return nil, err
	}
	r.Align(4)
	return data, nil
}

// ReadUniqueBytes reads a unique pointer to a conformant byte array.
// A null pointer yields a nil slice.
func (r *Reader) ReadUniqueBytes() ([]byte, error) {
	present, err := r.ReadPointer()
	if err != nil || !present {
		return nil, err
	}
	return r.ReadConformantBytes()
}

// Writer builds NDR-encoded stub data
type Writer struct {
	data []byte
}

// NewWriter creates an NDR writer
func NewWriter() *Writer {
	return &Writer{data: make([]byte, 0, 256)}
}

// Bytes returns the written data
func (w *Writer) Bytes() []byte {
	return w.data
}

// Len returns the current length
func (w *Writer) Len() int {
	return len(w.data)
}

// Align pads to n-byte boundary
func (w *Writer) Align(n int) {
	for len(w.data)%n != 0 {
		w.data = append(w.data, 0)
	}
}

// WriteUint32 writes an aligned little-endian uint32
func (w *Writer) WriteUint32(v uint32) {
	w.Align(4)
	w.data = encoding.AppendUint32LE(w.data, v)
}

// WriteBytes writes raw bytes
func (w *Writer) WriteBytes(b []byte) {
	w.data = append(w.data, b...)
}

// WritePointer writes a non-null referent ID
func (w *Writer) WritePointer(refID uint32) {
	w.WriteUint32(refID)
}

// WriteNullPointer writes a null pointer
func (w *Writer) WriteNullPointer() {
	w.WriteUint32(0)
}

// WriteUnicodeString writes a conformant varying NUL-terminated UTF-16LE string
func (w *Writer) WriteUnicodeString(s string) {
	utf16 := encoding.ToUTF16LEWithNull(s)
	chars := uint32(len(utf16) / 2)

	w.WriteUint32(chars) // MaxCount
	w.WriteUint32(0)     // Offset
	w.WriteUint32(chars) // ActualCount
	w.WriteBytes(utf16)
	w.Align(4)
}

// WriteUniqueString writes a [string, unique] wchar_t* parameter.
// An empty string is sent as a null pointer.
func (w *Writer) WriteUniqueString(refID uint32, s string) {
	if s == "" {
		w.WriteNullPointer()
		return
	}
	w.WritePointer(refID)
	w.WriteUnicodeString(s)
}

// WriteConformantBytes writes a conformant byte array
func (w *Writer) WriteConformantBytes(data []byte) {
	w.WriteUint32(uint32(len(data))) // MaxCount
	w.WriteBytes(data)
	w.Align(4)
}

// WriteUniqueBytes writes a [unique, size_is(n)] BYTE* parameter.
// A nil slice is sent as a null pointer.
func (w *Writer) WriteUniqueBytes(refID uint32, data []byte) {
	if data == nil {
		w.WriteNullPointer()
		return
	}
	w.WritePointer(refID)
	w.WriteConformantBytes(data)
}
