package rprn

import (
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/pkg/ndr"
)

// Op identifies an MS-RPRN operation this package can issue
type Op int

// Supported operations
const (
	OpEnumPrinterDrivers Op = iota
	OpGetPrinterDriverDirectory
	OpAddPrinterDriverEx
)

// Opnums
const (
	OpnumEnumPrinterDrivers        uint16 = 10
	OpnumGetPrinterDriverDirectory uint16 = 12
	OpnumAddPrinterDriverEx        uint16 = 89
)

// EnumDriversRequest holds the RpcEnumPrinterDrivers [in] parameters. A nil
// Buffer asks the server for the required size.
type EnumDriversRequest struct {
	Server      string
	Environment string
	Level       uint32
	Buffer      []byte
}

// EnumDriversResponse holds the RpcEnumPrinterDrivers [out] parameters
type EnumDriversResponse struct {
	Drivers  []byte
	Needed   uint32
	Returned uint32
	Status   uint32
}

// DriverDirectoryRequest holds the RpcGetPrinterDriverDirectory [in]
// parameters. A nil Buffer asks the server for the required size.
type DriverDirectoryRequest struct {
	Server      string
	Environment string
	Level       uint32
	Buffer      []byte
}

// DriverDirectoryResponse holds the RpcGetPrinterDriverDirectory [out]
// parameters
type DriverDirectoryResponse struct {
	Directory []byte
	Needed    uint32
	Status    uint32
}

// AddDriverRequest holds the RpcAddPrinterDriverEx [in] parameters
type AddDriverRequest struct {
	Server    string
	Container DriverContainer
	Flags     uint32
}

// AddDriverResponse holds the RpcAddPrinterDriverEx return value
type AddDriverResponse struct {
	Status uint32
}

// operation binds an Op to its opnum and stub codec
type operation struct {
	name  string
	opnum uint16
	build func(params any) ([]byte, error)
	parse func(stub []byte) (any, error)
}

var ops = map[Op]operation{
	OpEnumPrinterDrivers: {
		name:  "RpcEnumPrinterDrivers",
		opnum: OpnumEnumPrinterDrivers,
		build: buildEnumPrinterDrivers,
		parse: parseEnumPrinterDrivers,
	},
	OpGetPrinterDriverDirectory: {
		name:  "RpcGetPrinterDriverDirectory",
		opnum: OpnumGetPrinterDriverDirectory,
		build: buildGetPrinterDriverDirectory,
		parse: parseGetPrinterDriverDirectory,
	},
	OpAddPrinterDriverEx: {
		name:  "RpcAddPrinterDriverEx",
		opnum: OpnumAddPrinterDriverEx,
		build: buildAddPrinterDriverEx,
		parse: parseAddPrinterDriverEx,
	},
}

// String returns the MS-RPRN method name
func (o Op) String() string {
	if op, ok := ops[o]; ok {
		return op.name
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Opnum returns the operation number, or false for an unknown Op
func (o Op) Opnum() (uint16, bool) {
	op, ok := ops[o]
	return op.opnum, ok
}

func badParams(name string, want, got any) error {
	return fmt.Errorf("%w: %s expects %T, got %T", ErrBadParameters, name, want, got)
}

func malformed(name string, err error) error {
	return fmt.Errorf("%w: %s response: %v", ErrMalformedStructure, name, err)
}

// RpcEnumPrinterDrivers(pName, pEnvironment, Level, pDrivers, cbBuf)
func buildEnumPrinterDrivers(params any) ([]byte, error) {
	req, ok := params.(*EnumDriversRequest)
	if !ok {
		return nil, badParams("RpcEnumPrinterDrivers", req, params)
	}

	w := ndr.NewWriter()
	w.WriteUniqueString(serverRefID, req.Server)
	w.WriteUniqueString(envParamRefID, req.Environment)
	w.WriteUint32(req.Level)
	w.WriteUniqueBytes(bufferRefID, req.Buffer)
	w.WriteUint32(uint32(len(req.Buffer)))
	return w.Bytes(), nil
}

// pDrivers, pcbNeeded, pcReturned, return value
func parseEnumPrinterDrivers(stub []byte) (any, error) {
	r := ndr.NewReader(stub)
	var resp EnumDriversResponse
	var err error

	if resp.Drivers, err = r.ReadUniqueBytes(); err != nil {
		return nil, malformed("RpcEnumPrinterDrivers", err)
	}
	if resp.Needed, err = r.ReadUint32(); err != nil {
		return nil, malformed("RpcEnumPrinterDrivers", err)
	}
	if resp.Returned, err = r.ReadUint32(); err != nil {
		return nil, malformed("RpcEnumPrinterDrivers", err)
	}
	if resp.Status, err = r.ReadUint32(); err != nil {
		return nil, malformed("RpcEnumPrinterDrivers", err)
	}
	return &resp, nil
}

// RpcGetPrinterDriverDirectory(pName, pEnvironment, Level, pDriverDirectory, cbBuf)
func buildGetPrinterDriverDirectory(params any) ([]byte, error) {
	req, ok := params.(*DriverDirectoryRequest)
	if !ok {
		return nil, badParams("RpcGetPrinterDriverDirectory", req, params)
	}

	w := ndr.NewWriter()
	w.WriteUniqueString(serverRefID, req.Server)
	w.WriteUniqueString(envParamRefID, req.Environment)
	w.WriteUint32(req.Level)
	w.WriteUniqueBytes(bufferRefID, req.Buffer)
	w.WriteUint32(uint32(len(req.Buffer)))
	return w.Bytes(), nil
}

// pDriverDirectory, pcbNeeded, return value
func parseGetPrinterDriverDirectory(stub []byte) (any, error) {
	r := ndr.NewReader(stub)
	var resp DriverDirectoryResponse
	var err error

	if resp.Directory, err = r.ReadUniqueBytes(); err != nil {
		return nil, malformed("RpcGetPrinterDriverDirectory", err)
	}
	if resp.Needed, err = r.ReadUint32(); err != nil {
		return nil, malformed("RpcGetPrinterDriverDirectory", err)
	}
	if resp.Status, err = r.ReadUint32(); err != nil {
		return nil, malformed("RpcGetPrinterDriverDirectory", err)
	}
	return &resp, nil
}

// RpcAddPrinterDriverEx(pName, pDriverContainer, dwFileCopyFlags)
func buildAddPrinterDriverEx(params any) ([]byte, error) {
	req, ok := params.(*AddDriverRequest)
	if !ok {
		return nil, badParams("RpcAddPrinterDriverEx", req, params)
	}

	w := ndr.NewWriter()
	w.WriteUniqueString(serverRefID, req.Server)
	// pDriverContainer is a [ref] pointer: no referent on the wire
	if err := req.Container.marshalTo(w); err != nil {
		return nil, err
	}
	w.WriteUint32(req.Flags)
	return w.Bytes(), nil
}

func parseAddPrinterDriverEx(stub []byte) (any, error) {
	status, err := ndr.NewReader(stub).ReadUint32()
	if err != nil {
		return nil, malformed("RpcAddPrinterDriverEx", err)
	}
	return &AddDriverResponse{Status: status}, nil
}
