package smb

import (
	"context"
	"fmt"

	"github.com/ineffectivecoder/SpoolGooser/internal/encoding"
	"github.com/ineffectivecoder/SpoolGooser/pkg/smb/types"
)

// defaultIOSize is used when the server did not advertise a limit
const defaultIOSize = 65536

// File is an open named pipe handle. Pipes have no file position, so every
// read and write goes to offset 0.
type File struct {
	tree   *Tree
	fileID types.FileID
	name   string
}

// OpenPipe opens a named pipe on an IPC$ tree. The name carries no leading
// backslash.
func (t *Tree) OpenPipe(ctx context.Context, pipeName string, access types.AccessMask) (*File, error) {
	req := types.NewCreatePipeRequest(encoding.ToUTF16LE(pipeName), access)

	_, body, err := t.request(ctx, types.CommandCreate, req.Marshal())
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", pipeName, err)
	}

	var createResp types.CreateResponse
	if err := createResp.Unmarshal(body); err != nil {
		return nil, fmt.Errorf("failed to parse create response: %w", err)
	}

	return &File{
		tree:   t,
		fileID: createResp.FileID,
		name:   pipeName,
	}, nil
}

// Read reads one message chunk from the pipe. A STATUS_BUFFER_OVERFLOW reply
// still carries data; the rest is returned by the next Read.
func (f *File) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if f.fileID.IsZero() {
		return 0, ErrPipeClosed
	}

	readLen := uint32(len(p))
	if limit := f.maxRead(); readLen > limit {
		readLen = limit
	}

	_, body, err := f.tree.request(context.Background(), types.CommandRead, types.NewReadRequest(f.fileID, readLen))
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", f.name, err)
	}

	var readResp types.ReadResponse
	if err := readResp.Unmarshal(body); err != nil {
		return 0, fmt.Errorf("failed to parse read response: %w", err)
	}
	return copy(p, readResp.Data), nil
}

// Write writes p to the pipe, splitting at the negotiated write size
func (f *File) Write(p []byte) (int, error) {
	if f.fileID.IsZero() {
		return 0, ErrPipeClosed
	}

	written := 0
	for len(p) > 0 {
		chunk := p
		if limit := f.maxWrite(); uint32(len(chunk)) > limit {
			chunk = chunk[:limit]
		}

		_, body, err := f.tree.request(context.Background(), types.CommandWrite, types.NewWriteRequest(f.fileID, chunk))
		if err != nil {
			return written, fmt.Errorf("write %s: %w", f.name, err)
		}

		count, err := types.WriteCount(body)
		if err != nil {
			return written, fmt.Errorf("failed to parse write response: %w", err)
		}
		if count == 0 {
			return written, fmt.Errorf("write %s: %w", f.name, ErrShortResponse)
		}

		written += int(count)
		p = p[count:]
	}
	return written, nil
}

// Transceive writes input and reads the reply in a single
// FSCTL_PIPE_TRANSCEIVE. Overflowing replies are drained with READs.
func (f *File) Transceive(ctx context.Context, input []byte) ([]byte, error) {
	if f.fileID.IsZero() {
		return nil, ErrPipeClosed
	}

	req := types.NewIoctlRequest(f.fileID, types.FsctlPipeTransceive, input, f.maxRead())
	h, body, err := f.tree.request(ctx, types.CommandIoctl, req)
	if err != nil {
		return nil, fmt.Errorf("transceive %s: %w", f.name, err)
	}

	var ioctlResp types.IoctlResponse
	if err := ioctlResp.Unmarshal(body); err != nil {
		return nil, fmt.Errorf("failed to parse ioctl response: %w", err)
	}

	out := ioctlResp.Output
	for h.Status == types.StatusBufferOverflow {
		h, body, err = f.tree.request(ctx, types.CommandRead, types.NewReadRequest(f.fileID, f.maxRead()))
		if err != nil {
			return nil, fmt.Errorf("transceive %s: %w", f.name, err)
		}
		var readResp types.ReadResponse
		if err := readResp.Unmarshal(body); err != nil {
			return nil, fmt.Errorf("failed to parse read response: %w", err)
		}
		out = append(out, readResp.Data...)
	}
	return out, nil
}

// Close closes the pipe handle
func (f *File) Close() error {
	if f.fileID.IsZero() {
		return nil
	}

	_, _, err := f.tree.request(context.Background(), types.CommandClose, types.NewCloseRequest(f.fileID))
	f.fileID = types.FileID{}
	if err != nil {
		return fmt.Errorf("close %s: %w", f.name, err)
	}
	return nil
}

func (f *File) maxRead() uint32 {
	if n := f.tree.session.maxReadSize; n > 0 && n < defaultIOSize {
		return n
	}
	return defaultIOSize
}

func (f *File) maxWrite() uint32 {
	if n := f.tree.session.maxWriteSize; n > 0 && n < defaultIOSize {
		return n
	}
	return defaultIOSize
}

// Name returns the pipe name
func (f *File) Name() string {
	return f.name
}

// FileID returns the SMB file ID
func (f *File) FileID() types.FileID {
	return f.fileID
}
