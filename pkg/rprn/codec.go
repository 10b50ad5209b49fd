package rprn

import (
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
	"github.com/ineffectivecoder/SpoolGooser/pkg/ndr"
)

// Referent IDs. The DriverInfo2 string pointers keep fixed tokens; the other
// unique pointers in a stub sit above that range.
const (
	nameRefID        uint32 = 0x00020000
	environmentRefID uint32 = 0x00020004
	driverPathRefID  uint32 = 0x00020008
	dataFileRefID    uint32 = 0x0002000c
	configFileRefID  uint32 = 0x00020010

	driverInfoRefID uint32 = 0x00020014
	serverRefID     uint32 = 0x00020018
	envParamRefID   uint32 = 0x0002001c
	bufferRefID     uint32 = 0x00020020
)

// DriverInfo2Version is the cVersion of drivers for Windows 2000 and later
const DriverInfo2Version uint32 = 3

// driverInfo2HeaderSize is cVersion plus five string offsets
const driverInfo2HeaderSize = 24

// DriverInfo2Request is the DRIVER_INFO_2 sent inside a DriverContainer
type DriverInfo2Request struct {
	CVersion uint32

	NameRefID        uint32
	EnvironmentRefID uint32
	DriverPathRefID  uint32
	DataFileRefID    uint32
	ConfigFileRefID  uint32

	Name        string
	Environment string
	DriverPath  string
	DataFile    string
	ConfigFile  string
}

// NewDriverInfo2 builds a v3 DRIVER_INFO_2 with the standard referent IDs
func NewDriverInfo2(name, environment, driverPath, dataFile, configFile string) DriverInfo2Request {
	return DriverInfo2Request{
		CVersion:         DriverInfo2Version,
		NameRefID:        nameRefID,
		EnvironmentRefID: environmentRefID,
		DriverPathRefID:  driverPathRefID,
		DataFileRefID:    dataFileRefID,
		ConfigFileRefID:  configFileRefID,
		Name:             name,
		Environment:      environment,
		DriverPath:       driverPath,
		DataFile:         dataFile,
		ConfigFile:       configFile,
	}
}

// DriverContainer is DRIVER_CONTAINER with the level 2 arm selected
type DriverContainer struct {
	Level uint32
	Tag   uint32
	Info  DriverInfo2Request
}

// NewDriverContainer wraps info in a level 2 container
func NewDriverContainer(info DriverInfo2Request) DriverContainer {
	return DriverContainer{Level: 2, Tag: 2, Info: info}
}

// ValidEnvironment reports whether env is a supported environment string
func ValidEnvironment(env string) bool {
	return env == EnvironmentX64 || env == EnvironmentX86
}

// Marshal encodes the container as a stand-alone NDR parameter
func (c DriverContainer) Marshal() ([]byte, error) {
	w := ndr.NewWriter()
	if err := c.marshalTo(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (c DriverContainer) marshalTo(w *ndr.Writer) error {
	if !ValidEnvironment(c.Info.Environment) {
		return fmt.Errorf("%w: %q", ErrInvalidEnvironment, c.Info.Environment)
	}

	w.WriteUint32(c.Level)
	w.WriteUint32(c.Tag)
	w.WritePointer(driverInfoRefID)

	info := c.Info
	fields := []struct {
		ref uint32
		val string
	}{
		{info.NameRefID, info.Name},
		{info.EnvironmentRefID, info.Environment},
		{info.DriverPathRefID, info.DriverPath},
		{info.DataFileRefID, info.DataFile},
		{info.ConfigFileRefID, info.ConfigFile},
	}

	w.WriteUint32(info.CVersion)
	for _, f := range fields {
		if f.val == "" || f.ref == 0 {
			w.WriteNullPointer()
			continue
		}
		w.WritePointer(f.ref)
	}

	// Deferred referents, in pointer order
	for _, f := range fields {
		if f.val == "" || f.ref == 0 {
			continue
		}
		w.WriteUnicodeString(f.val)
	}
	return nil
}

// DriverInfo2 is a DRIVER_INFO_2 record as returned by RpcEnumPrinterDrivers.
// String fields hold raw UTF-16LE without the terminator; use Text to
// display them.
type DriverInfo2 struct {
	Version     uint32
	Name        []byte
	Environment []byte
	DriverPath  []byte
	DataFile    []byte
	ConfigFile  []byte
}

// Text decodes a UTF-16LE field
func Text(b []byte) string {
	return encoding.FromUTF16LE(b)
}

// DecodeDriverInfo2 decodes the record at the start of buf
func DecodeDriverInfo2(buf []byte) (DriverInfo2, error) {
	return DecodeDriverInfo2At(buf, 0)
}

// DecodeDriverInfo2At decodes the record at base. String offsets are
// relative to the start of the record; a zero offset is a NULL field.
func DecodeDriverInfo2At(buf []byte, base int) (DriverInfo2, error) {
	var info DriverInfo2
	if base < 0 || base+driverInfo2HeaderSize > len(buf) {
		return info, fmt.Errorf("%w: DRIVER_INFO_2 header at %d exceeds %d byte buffer",
			ErrMalformedStructure, base, len(buf))
	}
	rec := buf[base:]

	info.Version = encoding.Uint32LE(rec[0:4])
	fields := []struct {
		name string
		dst  *[]byte
	}{
		{"name", &info.Name},
		{"environment", &info.Environment},
		{"driver path", &info.DriverPath},
		{"data file", &info.DataFile},
		{"config file", &info.ConfigFile},
	}

	for i, f := range fields {
		off := encoding.Uint32LE(rec[4+4*i:])
		s, err := stringAt(rec, off)
		if err != nil {
			return DriverInfo2{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = s
	}
	return info, nil
}

// DecodeDriverInfo2Array decodes count consecutive records
func DecodeDriverInfo2Array(buf []byte, count uint32) ([]DriverInfo2, error) {
	if uint64(count)*driverInfo2HeaderSize > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: %d records do not fit in %d bytes",
			ErrMalformedStructure, count, len(buf))
	}

	drivers := make([]DriverInfo2, 0, count)
	for i := 0; i < int(count); i++ {
		info, err := DecodeDriverInfo2At(buf, i*driverInfo2HeaderSize)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		drivers = append(drivers, info)
	}
	return drivers, nil
}

func stringAt(rec []byte, off uint32) ([]byte, error) {
	if off == 0 {
		return nil, nil
	}
	if uint64(off) > uint64(len(rec)) {
		return nil, fmt.Errorf("%w: offset %d exceeds %d byte buffer", ErrMalformedStructure, off, len(rec))
	}
	s, ok := encoding.UTF16Terminated(rec[off:])
	if !ok {
		return nil, fmt.Errorf("%w: no terminator after offset %d", ErrMalformedStructure, off)
	}
	out := make([]byte, len(s))
	copy(out, s)
	return out, nil
}

// DecodeDriverDirectory decodes the RpcGetPrinterDriverDirectory payload
func DecodeDriverDirectory(buf []byte) (string, error) {
	s, ok := encoding.UTF16Terminated(buf)
	if !ok {
		return "", fmt.Errorf("%w: driver directory has no terminator", ErrMalformedStructure)
	}
	return encoding.FromUTF16LE(s), nil
}
