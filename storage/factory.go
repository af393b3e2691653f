package storage

import (
	"github.com/foedus-go/pagecore/collab"
	"github.com/foedus-go/pagecore/fault"
	"github.com/foedus-go/pagecore/page"
)

// newRootHandle allocates and initializes a fresh root page for
// metadata via alloc, returning a Handle that points at it. rootType is
// passed explicitly rather than derived from metadata's storage type:
// a Sequential storage's root page carries the distinct
// page.TypeSequentialRoot tag even though ordinary data pages in the
// same storage carry page.TypeSequential (see toPageType, used for
// those data pages instead).
func newRootHandle(metadata Metadata, alloc collab.PageAllocator, rootType page.Type) (Handle, error) {
	body, err := alloc.AllocateVolatilePage(page.BodySize)
	if err != nil {
		return Handle{}, fault.Wrap(err, "storage: allocating root page")
	}
	p := page.New(body)
	ptr := page.NewVolatilePagePointer(0, uint64(metadata.StorageID()))
	vi := page.VolatileInitializer{
		StorageID: uint32(metadata.StorageID()),
		PageType:  rootType,
		Root:      true,
	}
	if err := vi.Initialize(ptr, p); err != nil {
		return Handle{}, fault.Wrap(err, "storage: initializing root page")
	}
	return Handle{Metadata: metadata, Root: ptr, RootHeader: p.Header.State()}, nil
}

// ExpectedDataPageType returns the page.Type a non-root data page
// belonging to this storage must carry, derived from the storage's own
// type tag. Callers fetching a page via the (external) buffer pool use
// it with page.RequireType to catch a misrouted pointer before reading
// the page body.
func (m Metadata) ExpectedDataPageType() page.Type {
	return m.StorageTypeTag().toPageType()
}

// ArrayFactory builds Array-typed storages. It rejects payload_size==0
// and array_size==0, the two ArrayMetadata fields that would make the
// storage unusable.
type ArrayFactory struct{}

// Create implements Factory.
func (ArrayFactory) Create(metadata Metadata, alloc collab.PageAllocator) (Handle, error) {
	if metadata.StorageTypeTag() != TypeArray {
		return Handle{}, fault.Newf(fault.StorageWrongMetadataType, "storage: ArrayFactory received type %v", metadata.StorageTypeTag())
	}
	if metadata.Array.PayloadSize == 0 {
		return Handle{}, fault.New(fault.StorageInvalidOption, "storage: array payload_size must be > 0")
	}
	if metadata.Array.ArraySize == 0 {
		return Handle{}, fault.New(fault.StorageInvalidOption, "storage: array array_size must be > 0")
	}
	return newRootHandle(metadata, alloc, page.TypeArray)
}

// SequentialFactory builds Sequential-typed storages. There are no
// extra fields to validate.
type SequentialFactory struct{}

// Create implements Factory.
func (SequentialFactory) Create(metadata Metadata, alloc collab.PageAllocator) (Handle, error) {
	if metadata.StorageTypeTag() != TypeSequential {
		return Handle{}, fault.Newf(fault.StorageWrongMetadataType, "storage: SequentialFactory received type %v", metadata.StorageTypeTag())
	}
	return newRootHandle(metadata, alloc, page.TypeSequentialRoot)
}

// HashFactory builds Hash-typed storages. It rejects bin_count==0,
// since a hash storage with no bins cannot place any record.
type HashFactory struct{}

// Create implements Factory.
func (HashFactory) Create(metadata Metadata, alloc collab.PageAllocator) (Handle, error) {
	if metadata.StorageTypeTag() != TypeHashRoot {
		return Handle{}, fault.Newf(fault.StorageWrongMetadataType, "storage: HashFactory received type %v", metadata.StorageTypeTag())
	}
	if metadata.Hash.BinCount == 0 {
		return Handle{}, fault.New(fault.StorageInvalidOption, "storage: hash bin_count must be > 0")
	}
	return newRootHandle(metadata, alloc, page.TypeHashRoot)
}
