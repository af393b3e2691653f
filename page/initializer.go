package page

// Initializer is the per-type hook of the VolatilePageInitializer
// strategy (VolatileInitializer below carries storage_id, page_type and
// root), realized as a one-method capability rather than an
// inheritance hierarchy — there is no runtime type info to dispatch
// on beyond the Header.PageTypeTag byte any consumer can already read.
type Initializer interface {
	// InitializeMore runs after Header is initialized and the page is
	// zeroed; it fills in whatever type-specific body content a fresh
	// page of this type needs before it is published.
	InitializeMore(p *Page) error
}

// VolatileInitializer carries the construction parameters shared by
// every page type and drives the full init sequence: zero the page,
// call Header.InitVolatile, then run the type-specific hook.
type VolatileInitializer struct {
	StorageID uint32
	PageType  Type
	Root      bool
	Hook      Initializer
}

// Initialize performs the full VolatilePageInitializer contract: (a)
// the page body is zeroed, (b) Header.InitVolatile runs, (c)
// Hook.InitializeMore runs.
func (vi VolatileInitializer) Initialize(pageID PagePointer, p *Page) error {
	clear(p.Body)
	p.Header.InitVolatile(pageID, vi.StorageID, vi.PageType, vi.Root)
	hook := vi.Hook
	if hook == nil {
		hook = NullInitializer{}
	}
	return hook.InitializeMore(p)
}

// NullInitializer is the sentinel VolatilePageInitializer whose hook is
// a no-op. It is used on page-fault paths that assert no page will
// actually be constructed, so any accidental invocation of
// InitializeMore is obviously harmless rather than silently wrong.
type NullInitializer struct{}

// InitializeMore implements Initializer as a no-op.
func (NullInitializer) InitializeMore(*Page) error { return nil }
