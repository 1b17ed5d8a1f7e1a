package attachment

import (
	"math"

	"golang.org/x/sys/unix"

	"github.com/pffcore/pffcore/pff"
)

// Seek whence values, named after the POSIX constants golang.org/x/sys/unix
// exposes, for parity with how libbfio's underlying seek primitive names
// its origin argument. No real syscall is issued here — SeekOffset below
// only repositions an in-memory/stream cursor — so this is documentation
// parity, not an actual fd operation.
const (
	SeekSet = unix.SEEK_SET
	SeekCur = unix.SEEK_CUR
	SeekEnd = unix.SEEK_END
)

const fileioOp = "attachment.fileio"

// AccessFlag mirrors libbfio's LIBBFIO_ACCESS_FLAG_* bits. pffcore's
// attached-file adapter only ever supports read access (§6: "Currently
// only support for reading data", libpff_attached_file_io_handle.c),
// so WriteBuffer below always succeeds with zero bytes written rather than
// failing — matching the C source's deliberate no-op write path, not an
// unimplemented stub.
type AccessFlag uint8

const (
	AccessFlagRead AccessFlag = 1 << iota
	AccessFlagWrite
)

// source is the minimal data provider FileIO wraps: an attachment's
// already-materialised byte buffer, or any other ReaderAt-like collaborator
// with a known size.
type source interface {
	ReadBufferAt(offset int64, out []byte) (int, error)
	Size() (int64, error)
}

// FileIO is the attached-file I/O adapter state machine (Created -> Open
// -> Closed), grounded on libpff_attached_file_io_handle.c: open validates
// read-only access flags and rejects double-open, close rejects a
// not-open handle, read/write/seek all require an open handle (size does
// not), and
// write always succeeds with zero bytes written once validated.
type FileIO struct {
	src         source
	isOpen      bool
	accessFlags AccessFlag
	offset      int64
}

// NewFileIO creates a Created-state adapter over src. Opening is a
// separate step, matching the C constructor/open split.
func NewFileIO(src source) *FileIO {
	return &FileIO{src: src}
}

// Open transitions Created -> Open. flags must request read access and
// must not request anything beyond it; calling Open on an already-open
// handle fails with KindState.
func (f *FileIO) Open(flags AccessFlag) error {
	if f.isOpen {
		return pff.Newf(fileioOp+".Open", pff.KindState, "IO handle already open")
	}
	if flags&AccessFlagRead == 0 {
		return pff.Newf(fileioOp+".Open", pff.KindArgument, "unsupported flags: read access required")
	}
	if flags&^AccessFlagRead != 0 {
		return pff.Newf(fileioOp+".Open", pff.KindArgument, "unsupported flags: only read access is supported")
	}
	f.accessFlags = flags
	f.isOpen = true
	f.offset = 0
	return nil
}

// Close transitions Open -> Closed. Closing a not-open handle fails with
// KindState.
func (f *FileIO) Close() error {
	if !f.isOpen {
		return pff.Newf(fileioOp+".Close", pff.KindState, "IO handle not open")
	}
	f.isOpen = false
	return nil
}

// IsOpen reports whether the handle is currently in the Open state.
func (f *FileIO) IsOpen() bool { return f.isOpen }

// ReadBuffer reads up to len(buffer) bytes at the current offset,
// advancing it. Requires an open handle with read access.
func (f *FileIO) ReadBuffer(buffer []byte) (int, error) {
	if !f.isOpen {
		return 0, pff.Newf(fileioOp+".ReadBuffer", pff.KindState, "IO handle not open")
	}
	if f.accessFlags&AccessFlagRead == 0 {
		return 0, pff.Newf(fileioOp+".ReadBuffer", pff.KindState, "IO handle has no read access")
	}
	n, err := f.src.ReadBufferAt(f.offset, buffer)
	if err != nil {
		return 0, pff.Wrap(fileioOp+".ReadBuffer", pff.KindIO, err)
	}
	f.offset += int64(n)
	return n, nil
}

// WriteBuffer is the adapter's always-succeeds-as-a-no-op write path: the
// attached-file adapter only supports read access, so any write, once
// argument-validated, reports zero bytes written rather than failing.
func (f *FileIO) WriteBuffer(buffer []byte) (int, error) {
	if !f.isOpen {
		return 0, pff.Newf(fileioOp+".WriteBuffer", pff.KindState, "IO handle not open")
	}
	if buffer == nil {
		return 0, pff.Newf(fileioOp+".WriteBuffer", pff.KindArgument, "invalid buffer")
	}
	if len(buffer) > math.MaxInt {
		return 0, pff.Newf(fileioOp+".WriteBuffer", pff.KindArgument, "buffer size %d exceeds platform maximum", len(buffer))
	}
	return 0, nil
}

// SeekOffset repositions the adapter's current offset, validated against
// the underlying source's size. whence follows io.Seeker convention.
func (f *FileIO) SeekOffset(offset int64, whence int) (int64, error) {
	if !f.isOpen {
		return 0, pff.Newf(fileioOp+".SeekOffset", pff.KindState, "IO handle not open")
	}
	size, err := f.src.Size()
	if err != nil {
		return 0, pff.Wrap(fileioOp+".SeekOffset", pff.KindIO, err)
	}
	var base int64
	switch whence {
	case SeekSet:
		base = 0
	case SeekCur:
		base = f.offset
	case SeekEnd:
		base = size
	default:
		return 0, pff.Newf(fileioOp+".SeekOffset", pff.KindArgument, "invalid whence %d", whence)
	}
	next := base + offset
	if next < 0 || next > size {
		return 0, pff.Newf(fileioOp+".SeekOffset", pff.KindIO, "seek to %d outside [0, %d]", next, size)
	}
	f.offset = next
	return next, nil
}

// Exists always reports true: the attachment data an adapter wraps is
// already resident once an Attachment is constructed, mirroring
// libpff_attached_file_io_handle_exists's unconditional success.
func (f *FileIO) Exists() (bool, error) { return true, nil }

// Size returns the underlying source's size. Permitted in any state,
// matching libpff_attached_file_io_handle_get_size: the size is a property
// of the already-resident source data, not of the handle's open/closed
// state.
func (f *FileIO) Size() (int64, error) {
	return f.src.Size()
}
