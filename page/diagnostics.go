package page

import (
	"go.uber.org/zap"

	"github.com/foedus-go/pagecore/fault"
)

// VerifyChecksumLogged is VerifyChecksum plus a warning logged through
// logger when verification fails, for callers loading a snapshot page
// off disk who want the failure on record before surfacing the fatal
// fault.PageChecksumMismatch to their caller. A nil logger is treated
// as zap.NewNop().
func (p *Page) VerifyChecksumLogged(logger *zap.Logger) bool {
	if logger == nil {
		logger = zap.NewNop()
	}
	ok := p.VerifyChecksum()
	if !ok {
		logger.Warn("page checksum mismatch",
			zap.Uint64("page_id", uint64(p.Header.PageID)),
			zap.Uint32("storage_id", p.Header.StorageID),
			zap.Uint32("stored_checksum", p.Header.Checksum),
			zap.Uint32("computed_checksum", ComputeChecksum(p.Body)))
	}
	return ok
}

// RequireType checks that Header.PageTypeTag matches want, logging and
// returning fault.PageTypeMismatch on disagreement.
func (p *Page) RequireType(want Type, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	got := p.Header.PageType()
	if got == want {
		return nil
	}
	logger.Warn("page type mismatch",
		zap.Uint64("page_id", uint64(p.Header.PageID)),
		zap.String("want", want.String()),
		zap.String("got", got.String()))
	return fault.Newf(fault.PageTypeMismatch, "page: want type %v, got %v", want, got)
}
