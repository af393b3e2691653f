package page

import (
	"testing"

	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap"
)

func TestVerifyChecksumLoggedOnMismatch(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	p := New(make([]byte, BodySize))
	p.SealChecksum()
	p.Body[0] ^= 1

	if p.VerifyChecksumLogged(logger) {
		t.Error("VerifyChecksumLogged() = true for a corrupted body")
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning logged, got %d", logs.Len())
	}
}

func TestVerifyChecksumLoggedSilentOnSuccess(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	p := New(make([]byte, BodySize))
	p.SealChecksum()

	if !p.VerifyChecksumLogged(logger) {
		t.Error("VerifyChecksumLogged() = false for an intact body")
	}
	if logs.Len() != 0 {
		t.Errorf("expected no warnings, got %d", logs.Len())
	}
}

func TestRequireTypeMismatch(t *testing.T) {
	p := New(make([]byte, BodySize))
	p.Header.PageTypeTag = TypeArray

	if err := p.RequireType(TypeArray, nil); err != nil {
		t.Errorf("RequireType(TypeArray) = %v, want nil", err)
	}
	err := p.RequireType(TypeHashBin, nil)
	if err == nil {
		t.Fatal("RequireType(TypeHashBin) = nil, want a mismatch error")
	}
}
