// Package pipe provides named pipe operations over SMB.
package pipe

import (
	"context"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/pkg/smb"
	"github.com/ineffectivecoder/SpoolGooser/pkg/smb/types"
)

// Pipe represents a named pipe connection
type Pipe struct {
	file *smb.File
	name string
}

// pipeAccess is requested on every open
const pipeAccess = types.FileReadData | types.FileWriteData | types.FileAppendData |
	types.FileReadEA | types.FileReadAttributes |
	types.ReadControl | types.Synchronize

// Open opens a named pipe on an IPC$ tree
func Open(ctx context.Context, tree *smb.Tree, pipeName string) (*Pipe, error) {
	if !tree.IsPipe() {
		return nil, fmt.Errorf("tree %s is not an IPC$ share", tree.ShareName())
	}

	file, err := tree.OpenPipe(ctx, pipeName, pipeAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to open pipe %s: %w", pipeName, err)
	}

	return &Pipe{
		file: file,
		name: pipeName,
	}, nil
}

// Read reads the next chunk of pipe data
func (p *Pipe) Read(buf []byte) (int, error) {
	return p.file.Read(buf)
}

// Write writes data to the pipe
func (p *Pipe) Write(data []byte) (int, error) {
	return p.file.Write(data)
}

// Transact writes a request and returns the reply in one round trip
func (p *Pipe) Transact(ctx context.Context, request []byte) ([]byte, error) {
	resp, err := p.file.Transceive(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("transact on %s: %w", p.name, err)
	}
	return resp, nil
}

// Close closes the pipe
func (p *Pipe) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// Name returns the pipe name
func (p *Pipe) Name() string {
	return p.name
}
