package listing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
)

func TestSequencer_GenerationsIncrease(t *testing.T) {
	s := NewSequencer(context.Background())
	defer s.SupersedeAll()

	var last uint64
	for i := 0; i < 5; i++ {
		r := s.Issue(KindFilterChange, model.Filter{}, model.FirstPage(20))
		assert.Greater(t, r.Generation, last)
		last = r.Generation
	}
	assert.Equal(t, last, s.Current())
}

func TestSequencer_AcceptOnlyNewest(t *testing.T) {
	s := NewSequencer(context.Background())
	old := s.Issue(KindInitial, model.Filter{}, model.FirstPage(20))
	cur := s.Issue(KindFilterChange, model.Filter{Breed: "Pug"}, model.FirstPage(20))

	assert.False(t, s.Accept(old), "older generation must be rejected even if its token is live")
	assert.True(t, s.Accept(cur))

	assert.Equal(t, 1, s.Supersede(cur.Generation))
	assert.True(t, old.Cancelled())
	assert.False(t, cur.Cancelled())
	assert.True(t, s.Busy())

	require.True(t, s.Resolve(cur))
	assert.False(t, s.Resolve(cur), "a request resolves exactly once")
	assert.True(t, cur.Cancelled(), "resolving releases the token")
	assert.False(t, s.Busy())
}

func TestSequencer_CancelledTokenRejected(t *testing.T) {
	s := NewSequencer(context.Background())
	r := s.Issue(KindLoadMore, model.Filter{}, model.Cursor{Offset: 20, Limit: 20})
	assert.True(t, s.Outstanding(KindLoadMore))
	assert.False(t, s.Outstanding(KindFilterChange))

	s.SupersedeAll()
	assert.False(t, s.Accept(r))
	assert.False(t, s.Outstanding(KindLoadMore))
}

func TestSequencer_ParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSequencer(ctx)
	r := s.Issue(KindInitial, model.Filter{}, model.FirstPage(20))

	cancel()
	assert.True(t, r.Cancelled())
	assert.False(t, s.Accept(r))
	s.Resolve(r)
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindInitial, "initial"},
		{KindFilterChange, "filter_change"},
		{KindLoadMore, "load_more"},
		{KindHydration, "hydration"},
		{Kind(0), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
