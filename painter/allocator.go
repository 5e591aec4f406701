package painter

// Allocator supplies the scratch byte buffers Fill and Stroke need for a
// supersampled anti-aliasing mask. Modeling allocation as an interface
// (rather than calling make directly) gives a caller embedding this
// package in a constrained environment a hook to bound or fail
// allocation; this package never panics on an error it returns and
// propagates it verbatim to the Fill/Stroke caller.
type Allocator interface {
	Alloc(n int) ([]byte, error)
}

// heapAllocator is the default Allocator: a plain make, which never
// fails in ordinary Go (an allocation failure here is an OOM panic, not
// a recoverable error), the idiomatic default for a library that doesn't
// otherwise need to model a bounded arena.
type heapAllocator struct{}

func (heapAllocator) Alloc(n int) ([]byte, error) { return make([]byte, n), nil }

// DefaultAllocator is the Allocator Fill/Stroke callers pass when they
// have no reason to bound or instrument scratch allocation themselves.
var DefaultAllocator Allocator = heapAllocator{}
