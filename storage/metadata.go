// Package storage implements the per-storage descriptor and the
// registry that creates, looks up, and enumerates live storages.
package storage

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/foedus-go/pagecore/fault"
	"github.com/foedus-go/pagecore/page"
)

// maxNameLength bounds the byte length of Metadata.Name (a Go string,
// checked by validate) and is the width of the zero-padded name field
// in a create-log entry.
const maxNameLength = 64

// ID identifies a storage. Zero is reserved to mean "invalid"; no live
// storage is ever assigned it.
type ID uint32

// Type tags which Metadata variant a document holds, mirroring the
// on-disk-stable page.Type numbering storages are built from.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeArray
	TypeMasstreeIntermediate // structural only, no Metadata variant exists for it
	TypeMasstreeBorder       // structural only, no Metadata variant exists for it
	TypeSequential
	TypeSequentialRoot
	TypeHashRoot
	TypeHashBin
	TypeHashData
)

func (t Type) String() string {
	switch t {
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

// toPageType maps a storage Type onto the page.Type an ordinary (non-root)
// data page of that storage carries; see ExpectedDataPageType. The
// pure-structural Masstree tags, which have no Metadata variant, and
// TypeUnknown map to page.TypeUnknown.
func (t Type) toPageType() page.Type {
	switch t {
	case TypeArray:
		return page.TypeArray
	case TypeSequential:
		return page.TypeSequential
	case TypeSequentialRoot:
		return page.TypeSequentialRoot
	case TypeHashRoot:
		return page.TypeHashRoot
	case TypeHashBin:
		return page.TypeHashBin
	case TypeHashData:
		return page.TypeHashData
	default:
		return page.TypeUnknown
	}
}

// common is the header shared by every Metadata variant: id, type,
// name, and the root snapshot pointer.
type common struct {
	ID                  ID               `yaml:"id"`
	StorageType         Type             `yaml:"type"`
	Name                string           `yaml:"name"`
	RootSnapshotPointer page.PagePointer `yaml:"root_snapshot_page_id"`
}

func (c common) validate() error {
	if c.ID == 0 {
		return fault.New(fault.StorageInvalidOption, "storage: id must be > 0")
	}
	if len(c.Name) == 0 || len(c.Name) > maxNameLength {
		return fault.Newf(fault.StorageInvalidOption, "storage: name length must be in (0, %d], got %d", maxNameLength, len(c.Name))
	}
	return nil
}

// Metadata is a type-dispatched storage descriptor. Exactly one of the
// type-specific fields is meaningful, selected by StorageTypeTag(); the
// others are zero. This mirrors the compact tagged-variant shape a
// human-readable document naturally expresses.
type Metadata struct {
	common `yaml:",inline"`

	Array      ArrayMetadata      `yaml:"array,omitempty"`
	Sequential SequentialMetadata `yaml:"sequential,omitempty"`
	Hash       HashMetadata       `yaml:"hash,omitempty"`
}

// ArrayMetadata extends common with the two fields an array storage
// needs to come online: how many fixed-size records it holds and how
// large each record's payload is.
type ArrayMetadata struct {
	ArraySize   uint64 `yaml:"array_size,omitempty"`
	PayloadSize uint32 `yaml:"payload_size,omitempty"`
}

// SequentialMetadata adds nothing beyond the common header; a
// sequential heap needs no extra bootstrap parameter.
type SequentialMetadata struct{}

// HashMetadata extends common with the bin count a hash storage is
// partitioned into.
type HashMetadata struct {
	BinCount uint32 `yaml:"bin_count,omitempty"`
}

// NewArrayMetadata builds an Array-typed Metadata. Validation is the
// factory's job (see ArrayFactory), not the constructor's: a Metadata
// value can be built and then rejected by create, exactly like the
// failed-create path spec tests exercise.
func NewArrayMetadata(id ID, name string, arraySize uint64, payloadSize uint32) Metadata {
	return Metadata{
		common: common{ID: id, StorageType: TypeArray, Name: name},
		Array:  ArrayMetadata{ArraySize: arraySize, PayloadSize: payloadSize},
	}
}

// NewSequentialMetadata builds a Sequential-typed Metadata.
func NewSequentialMetadata(id ID, name string) Metadata {
	return Metadata{common: common{ID: id, StorageType: TypeSequential, Name: name}}
}

// NewHashMetadata builds a Hash-typed Metadata.
func NewHashMetadata(id ID, name string, binCount uint32) Metadata {
	return Metadata{
		common: common{ID: id, StorageType: TypeHash(), Name: name},
		Hash:   HashMetadata{BinCount: binCount},
	}
}

// TypeHash exists only so NewHashMetadata reads naturally; it is just TypeHashRoot.
func TypeHash() Type { return TypeHashRoot }

// StorageID returns the storage id.
func (m Metadata) StorageID() ID { return m.common.ID }

// StorageTypeTag returns the variant tag.
func (m Metadata) StorageTypeTag() Type { return m.common.StorageType }

// StorageName returns the bounded name.
func (m Metadata) StorageName() string { return m.common.Name }

// RootSnapshotPagePointer returns the root page's snapshot pointer.
func (m Metadata) RootSnapshotPagePointer() page.PagePointer { return m.common.RootSnapshotPointer }

// Clone deep-copies m. Metadata has no reference fields beyond the Go
// string (immutable by value semantics already), so a plain value copy
// already satisfies "deep copy"; Clone exists to name the operation the
// way the interface describes it.
func (m Metadata) Clone() Metadata {
	return m
}

// Save serializes m as a YAML document.
func (m Metadata) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(m); err != nil {
		return fault.Wrap(err, "storage: Metadata.Save")
	}
	return nil
}

// Load deserializes a single Metadata document produced by Save.
func Load(r io.Reader) (Metadata, error) {
	var m Metadata
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return Metadata{}, fault.Wrap(err, "storage: Load")
	}
	return m, nil
}

// Document is the root element of a multi-entry metadata snapshot: one
// entry per live storage, enumerated for persistence at snapshot time.
type Document struct {
	Entries []Metadata `yaml:"entries"`
}

// SaveDocument serializes every entry as a single document.
func SaveDocument(w io.Writer, entries []Metadata) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(Document{Entries: entries}); err != nil {
		return fault.Wrap(err, "storage: SaveDocument")
	}
	return nil
}

// LoadDocument deserializes a document produced by SaveDocument.
func LoadDocument(r io.Reader) ([]Metadata, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fault.Wrap(err, "storage: LoadDocument")
	}
	return doc.Entries, nil
}
