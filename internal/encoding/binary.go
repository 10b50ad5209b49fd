// Package encoding holds the byte-order and string helpers shared by the
// SMB2, DCE/RPC and NDR codecs. Everything on those wires is little-endian
// except the odd length prefix inside a cipher construction.
package encoding

import "encoding/binary"

var le = binary.LittleEndian

func Uint16LE(b []byte) uint16 { return le.Uint16(b) }
func Uint32LE(b []byte) uint32 { return le.Uint32(b) }
func Uint64LE(b []byte) uint64 { return le.Uint64(b) }

func PutUint16LE(b []byte, v uint16) { le.PutUint16(b, v) }
func PutUint32LE(b []byte, v uint32) { le.PutUint32(b, v) }
func PutUint64LE(b []byte, v uint64) { le.PutUint64(b, v) }

func AppendUint16LE(b []byte, v uint16) []byte { return le.AppendUint16(b, v) }
func AppendUint32LE(b []byte, v uint32) []byte { return le.AppendUint32(b, v) }
func AppendUint64LE(b []byte, v uint64) []byte { return le.AppendUint64(b, v) }

// AppendUint16BE is for the few network-order fields, such as the CCM
// associated-data length.
func AppendUint16BE(b []byte, v uint16) []byte { return binary.BigEndian.AppendUint16(b, v) }
