package page

import (
	"encoding/binary"
	"fmt"
)

// Header is the fixed 32-byte prefix embedded at offset 0 of every
// page. Field order here is the on-disk/on-wire order: little-endian
// integers throughout.
type Header struct {
	// PageID is either a VolatilePagePointer or a SnapshotPagePointer,
	// disambiguated by Snapshot below.
	PageID PagePointer

	StorageID uint32

	// Checksum is meaningful only for snapshot pages; recomputed at
	// snapshot seal (see Page.SealChecksum).
	Checksum uint32

	PageTypeTag Type

	Snapshot bool
	Root     bool

	// StatLatestModifier/StatLatestModifyEpoch are non-transactional
	// hints, never used for correctness.
	StatLatestModifier    uint8
	StatLatestModifyEpoch uint32

	Version Version
}

// HeaderSize must match the wire layout exactly: 8+4+4+1+1+1+1+4+8 = 32.
const headerWireSize = 8 + 4 + 4 + 1 + 1 + 1 + 1 + 4 + 8

func init() {
	if headerWireSize != HeaderSize {
		panic("page: header wire layout does not add up to HeaderSize")
	}
}

// InitVolatile zeroes the header and reinitializes it as a fresh
// volatile page. Precondition: the caller exclusively owns this
// memory (it has not yet been published to any other thread).
func (h *Header) InitVolatile(pageID PagePointer, storageID uint32, pageType Type, root bool) {
	h.initCommon(pageID, storageID, pageType, root, false)
}

// InitSnapshot is InitVolatile for a page being materialized from
// (or sealed to) a snapshot.
func (h *Header) InitSnapshot(pageID PagePointer, storageID uint32, pageType Type, root bool) {
	h.initCommon(pageID, storageID, pageType, root, true)
}

func (h *Header) initCommon(pageID PagePointer, storageID uint32, pageType Type, root, snapshot bool) {
	*h = Header{
		PageID:      pageID,
		StorageID:   storageID,
		PageTypeTag: pageType,
		Snapshot:    snapshot,
		Root:        root,
	}
	h.Version.word.Store(0)
}

// PageType decodes the page type tag. Zero (TypeUnknown) is treated as
// corrupt by any caller outside initialization code.
func (h *Header) PageType() Type {
	return h.PageTypeTag
}

// HeaderState is a plain, copyable point-in-time view of a Header: every
// field Header carries, with Version decoded into a Snapshot instead of
// copied as a live atomic.Uint64. Header itself must never be copied by
// value (Version embeds a sync/atomic.Uint64, and go vet's copylocks
// check flags exactly that); callers that need to hand a header's
// contents to something outside the page (a log entry, a test
// assertion, a diagnostic) take a HeaderState instead.
type HeaderState struct {
	PageID                PagePointer
	StorageID             uint32
	Checksum              uint32
	PageTypeTag           Type
	Snapshot              bool
	Root                  bool
	StatLatestModifier    uint8
	StatLatestModifyEpoch uint32
	Version               Snapshot
}

// PageType decodes the page type tag, mirroring Header.PageType.
func (s HeaderState) PageType() Type {
	return s.PageTypeTag
}

// State takes a copyable snapshot of h at this instant.
func (h *Header) State() HeaderState {
	return HeaderState{
		PageID:                h.PageID,
		StorageID:             h.StorageID,
		Checksum:              h.Checksum,
		PageTypeTag:           h.PageTypeTag,
		Snapshot:              h.Snapshot,
		Root:                  h.Root,
		StatLatestModifier:    h.StatLatestModifier,
		StatLatestModifyEpoch: h.StatLatestModifyEpoch,
		Version:               h.Version.Load(),
	}
}

// MarshalBinary encodes the header into its canonical 32-byte,
// little-endian on-disk/on-wire representation.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(h.PageID))
	binary.LittleEndian.PutUint32(buf[8:12], h.StorageID)
	binary.LittleEndian.PutUint32(buf[12:16], h.Checksum)
	buf[16] = byte(h.PageTypeTag)
	buf[17] = boolToByte(h.Snapshot)
	buf[18] = boolToByte(h.Root)
	buf[19] = h.StatLatestModifier
	binary.LittleEndian.PutUint32(buf[20:24], h.StatLatestModifyEpoch)
	binary.LittleEndian.PutUint64(buf[24:32], h.Version.word.Load())
	return buf, nil
}

// UnmarshalBinary decodes a 32-byte header previously produced by MarshalBinary.
func (h *Header) UnmarshalBinary(buf []byte) error {
	if len(buf) != HeaderSize {
		return fmt.Errorf("page: header must be exactly %d bytes, got %d", HeaderSize, len(buf))
	}
	h.PageID = PagePointer(binary.LittleEndian.Uint64(buf[0:8]))
	h.StorageID = binary.LittleEndian.Uint32(buf[8:12])
	h.Checksum = binary.LittleEndian.Uint32(buf[12:16])
	h.PageTypeTag = Type(buf[16])
	h.Snapshot = buf[17] != 0
	h.Root = buf[18] != 0
	h.StatLatestModifier = buf[19]
	h.StatLatestModifyEpoch = binary.LittleEndian.Uint32(buf[20:24])
	h.Version.word.Store(binary.LittleEndian.Uint64(buf[24:32]))
	return nil
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
