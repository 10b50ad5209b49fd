package encoding

import "unicode/utf16"

// ToUTF16LE encodes s as UTF-16LE without a terminator
func ToUTF16LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	b := make([]byte, 0, 2*len(units))
	for _, u := range units {
		b = le.AppendUint16(b, u)
	}
	return b
}

// ToUTF16LEWithNull encodes s as UTF-16LE followed by a two-byte NUL
func ToUTF16LEWithNull(s string) []byte {
	return append(ToUTF16LE(s), 0, 0)
}

// FromUTF16LE decodes UTF-16LE. A trailing odd byte is dropped.
func FromUTF16LE(b []byte) string {
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = le.Uint16(b[2*i:])
	}
	return string(utf16.Decode(units))
}

// UTF16Terminated returns the UTF-16LE code units of b up to, but not
// including, the first two-byte NUL on an even boundary. ok is false when b
// holds no terminator.
func UTF16Terminated(b []byte) (s []byte, ok bool) {
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return b[:i], true
		}
	}
	return b, false
}
