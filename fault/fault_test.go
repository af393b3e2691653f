package fault

import (
	"strings"
	"testing"
)

func TestNewAndCode(t *testing.T) {
	err := New(StorageNotFound, "storage 7 not found")
	if err.Code() != StorageNotFound {
		t.Errorf("Code() = %v, want %v", err.Code(), StorageNotFound)
	}
	if !strings.Contains(err.Error(), "storage 7 not found") {
		t.Errorf("Error() = %q, missing root message", err.Error())
	}
}

func TestWrapPreservesCodeAndAppendsContext(t *testing.T) {
	root := New(StorageInvalidOption, "payload_size must be > 0")
	wrapped := Wrap(root, "ArrayFactory.Create")
	wrapped = Wrap(wrapped, "Registry.Create")

	if wrapped.Code() != StorageInvalidOption {
		t.Errorf("Code() = %v, want %v", wrapped.Code(), StorageInvalidOption)
	}
	msg := wrapped.Error()
	for _, want := range []string{"payload_size must be > 0", "ArrayFactory.Create", "Registry.Create"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestWrapNilIsNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil, ...) should return nil")
	}
}

func TestIs(t *testing.T) {
	err := Wrap(New(Timeout, "lock budget exceeded"), "BufMgr.PageLock")
	if !Is(err, Timeout) {
		t.Error("Is(err, Timeout) = false, want true")
	}
	if Is(err, StorageNotFound) {
		t.Error("Is(err, StorageNotFound) = true, want false")
	}
}
