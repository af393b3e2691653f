package page

import "testing"

type recordingHook struct {
	called bool
	body   []byte
}

func (h *recordingHook) InitializeMore(p *Page) error {
	h.called = true
	h.body = p.Body
	return nil
}

func TestVolatileInitializerRunsHook(t *testing.T) {
	hook := &recordingHook{}
	vi := VolatileInitializer{StorageID: 5, PageType: TypeHashBin, Root: true, Hook: hook}

	p := New(make([]byte, BodySize))
	ptr := NewVolatilePagePointer(0, 77)
	if err := vi.Initialize(ptr, p); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if !hook.called {
		t.Error("InitializeMore was never called")
	}
	if p.Header.StorageID != 5 {
		t.Errorf("StorageID = %d, want 5", p.Header.StorageID)
	}
	if p.Header.PageType() != TypeHashBin {
		t.Errorf("PageType() = %v, want TypeHashBin", p.Header.PageType())
	}
	if !p.Header.Root {
		t.Error("Root = false, want true")
	}
	if p.Header.PageID != ptr {
		t.Errorf("PageID = %#x, want %#x", p.Header.PageID, ptr)
	}
}

func TestVolatileInitializerDefaultsToNullHook(t *testing.T) {
	vi := VolatileInitializer{StorageID: 1, PageType: TypeArray}
	p := New(make([]byte, BodySize))
	if err := vi.Initialize(NewVolatilePagePointer(0, 1), p); err != nil {
		t.Fatalf("Initialize with nil hook: %v", err)
	}
}

func TestNullInitializerIsNoOp(t *testing.T) {
	p := New(make([]byte, BodySize))
	if err := (NullInitializer{}).InitializeMore(p); err != nil {
		t.Fatalf("NullInitializer.InitializeMore: %v", err)
	}
}
