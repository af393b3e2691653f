package page

import "hash/crc32"

// castagnoli is the CRC32C polynomial table: a 32-bit page-content
// checksum over bytes 32..4096 of every snapshot page. No ecosystem
// CRC32C package is available, so hash/crc32's Castagnoli table is the
// grounded choice, not a fallback — it is literally what "CRC32C"
// names.
var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// ComputeChecksum computes the CRC32C of a page body (bytes 32..4096),
// i.e. everything after the header. The header's own Checksum field is
// never part of the computation.
func ComputeChecksum(body []byte) uint32 {
	return crc32.Checksum(body, castagnoli)
}

// SealChecksum recomputes and stores p's checksum ahead of snapshot
// persistence. Only meaningful for snapshot pages; volatile pages are
// never persisted.
func (p *Page) SealChecksum() {
	p.Header.Checksum = ComputeChecksum(p.Body)
}

// VerifyChecksum reports whether p's stored checksum matches its
// current body. Used when loading a snapshot page from disk.
func (p *Page) VerifyChecksum() bool {
	return p.Header.Checksum == ComputeChecksum(p.Body)
}
