package listing

import (
	"context"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
)

// Kind classifies why a request was issued.
type Kind int

const (
	KindInitial Kind = iota + 1
	KindFilterChange
	KindLoadMore
	KindHydration
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInitial:
		return "initial"
	case KindFilterChange:
		return "filter_change"
	case KindLoadMore:
		return "load_more"
	case KindHydration:
		return "hydration"
	}
	return "unknown"
}

// Request is one issued fetch. It is resolved exactly once and never reused.
type Request struct {
	Generation uint64
	Kind       Kind
	Filter     model.Filter
	Cursor     model.Cursor
	// Target is the last page a hydration sequence must reach.
	Target model.Cursor

	ctx     context.Context
	cancel  context.CancelFunc
	settled bool
}

// Context returns the request's cancellation token.
func (r *Request) Context() context.Context {
	return r.ctx
}

// Cancelled reports whether the request's token has been cancelled.
func (r *Request) Cancelled() bool {
	return r.ctx.Err() != nil
}

// Sequencer hands out generation numbers and cancellation tokens and decides
// which responses are authoritative. It is not safe for concurrent use; the
// controller serializes access under its own lock.
type Sequencer struct {
	parent      context.Context
	last        uint64
	outstanding map[uint64]*Request
}

// NewSequencer returns a sequencer whose tokens derive from parent.
func NewSequencer(parent context.Context) *Sequencer {
	return &Sequencer{
		parent:      parent,
		outstanding: make(map[uint64]*Request),
	}
}

// Issue allocates a request with a generation strictly greater than any
// previously issued one.
func (s *Sequencer) Issue(kind Kind, filter model.Filter, cursor model.Cursor) *Request {
	s.last++
	ctx, cancel := context.WithCancel(s.parent)
	r := &Request{
		Generation: s.last,
		Kind:       kind,
		Filter:     filter,
		Cursor:     cursor,
		Target:     cursor,
		ctx:        ctx,
		cancel:     cancel,
	}
	s.outstanding[r.Generation] = r
	return r
}

// Current returns the highest generation issued so far.
func (s *Sequencer) Current() uint64 {
	return s.last
}

// Supersede cancels every outstanding request whose generation is lower than
// olderThan and returns how many were cancelled.
func (s *Sequencer) Supersede(olderThan uint64) int {
	n := 0
	for gen, r := range s.outstanding {
		if gen < olderThan {
			r.cancel()
			delete(s.outstanding, gen)
			n++
		}
	}
	return n
}

// SupersedeAll cancels everything outstanding.
func (s *Sequencer) SupersedeAll() int {
	return s.Supersede(s.last + 1)
}

// Accept reports whether a response for r may mutate state: r must be the
// newest request and its token must still be live.
func (s *Sequencer) Accept(r *Request) bool {
	return r.Generation == s.last && !r.Cancelled()
}

// Resolve marks r as settled and releases its token. It returns false if r
// had already been resolved.
func (s *Sequencer) Resolve(r *Request) bool {
	if r.settled {
		return false
	}
	r.settled = true
	delete(s.outstanding, r.Generation)
	r.cancel()
	return true
}

// Outstanding reports whether a request of the given kind is in flight.
func (s *Sequencer) Outstanding(kind Kind) bool {
	for _, r := range s.outstanding {
		if r.Kind == kind {
			return true
		}
	}
	return false
}

// Busy reports whether any request is in flight.
func (s *Sequencer) Busy() bool {
	return len(s.outstanding) > 0
}
