// Package page implements the in-memory page concurrency core: the
// latch-free PageVersion word (the hard part), the fixed PageHeader
// prefix every page type shares, tagged page pointers, and the
// VolatilePageInitializer strategy that brings a freshly allocated
// page to life.
//
// Everything past the 32-byte header is opaque to this package; only
// storage-specific code (outside this module) interprets it.
package page

// Size is the fixed page size. 4 KiB is the canonical value; the whole
// on-disk and in-memory representation is built around it.
const Size = 4096

// HeaderSize is the fixed byte length of Header at offset 0 of every page.
const HeaderSize = 32

// BodySize is how many bytes of a page are left for storage-specific content.
const BodySize = Size - HeaderSize

// Type tags the kind of storage structure that owns a page. Values are
// numerically fixed to survive on-disk persistence and must never be
// renumbered.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeArray
	TypeMasstreeIntermediate
	TypeMasstreeBorder
	TypeSequential
	TypeSequentialRoot
	TypeHashRoot
	TypeHashBin
	TypeHashData
)

func (t Type) String() string {
	switch t {
	case TypeUnknown:
		return "Unknown"
	case TypeArray:
		return "Array"
	case TypeMasstreeIntermediate:
		return "MasstreeIntermediate"
	case TypeMasstreeBorder:
		return "MasstreeBorder"
	case TypeSequential:
		return "Sequential"
	case TypeSequentialRoot:
		return "SequentialRoot"
	case TypeHashRoot:
		return "HashRoot"
	case TypeHashBin:
		return "HashBin"
	case TypeHashData:
		return "HashData"
	default:
		return "Unknown"
	}
}

// Page is a fixed-size, opaque page: a Header at offset 0 followed by
// BodySize bytes of storage-specific content this package never
// interprets. It is borrowed, not owned — the buffer pool (an external
// collaborator) owns the backing memory; Page is a thin view over it.
type Page struct {
	Header Header
	Body   []byte
}

// New wraps pre-allocated, zeroed memory (typically from a
// collab.PageAllocator) as a Page. body must be exactly BodySize bytes.
func New(body []byte) *Page {
	if len(body) != BodySize {
		panic("page: body must be exactly BodySize bytes")
	}
	return &Page{Body: body}
}
