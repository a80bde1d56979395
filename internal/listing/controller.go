// Package listing implements the client-side controller behind the dog
// listing view: it owns the active filter and pagination cursor, issues and
// supersedes fetches, reconciles pages into a duplicate-free list and keeps
// the address bar in sync.
//
// Responses are applied in generation order, never arrival order. Every
// fetch is tagged by a Sequencer; a response is applied only if it belongs to
// the newest request and that request's token is still live. Cancelling a
// token aborts the network call when it can, but the generation check is what
// keeps stale data out.
package listing

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/client"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/events"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/idgen"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/urlcodec"
)

// DefaultDebounce is the quiet period before free-text search is applied.
const DefaultDebounce = 300 * time.Millisecond

// Seed is a server-rendered first page of the unfiltered listing.
type Seed struct {
	Dogs []model.Dog
}

// Option configures a Controller.
type Option func(*Controller)

// WithPageSize sets the number of dogs per page.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithLogger sets the controller's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithPublisher sets where listing telemetry is sent.
func WithPublisher(p events.Publisher) Option {
	return func(c *Controller) { c.publisher = p }
}

// WithHistory sets the address bar the controller keeps in sync.
func WithHistory(h History) Option {
	return func(c *Controller) { c.history = h }
}

// WithOrganizations sets the organizations known to the page. URL values
// naming any other organization are discarded.
func WithOrganizations(known model.OrganizationSet) Option {
	return func(c *Controller) { c.known = known }
}

// WithDebounce sets the free-text search quiet period.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithListingID overrides the generated id used in logs and events.
func WithListingID(id string) Option {
	return func(c *Controller) { c.id = id }
}

// Controller is the listing state machine. Each mounted listing view owns
// one; nothing is shared between instances. All methods are safe for
// concurrent use.
type Controller struct {
	id        string
	gateway   client.Gateway
	logger    *zap.Logger
	publisher events.Publisher
	history   History
	known     model.OrganizationSet
	limit     int
	delay     time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	search  *debouncer
	changes chan struct{}
	wg      sync.WaitGroup

	mu          sync.Mutex
	seq         *Sequencer
	list        *List
	filter      model.Filter
	cursor      model.Cursor
	loading     bool
	loadingMore bool
	err         *ErrorInfo
	failed      *Request
	mounted     bool
	closed      bool
}

// New returns an idle controller fetching through gw. Call Mount to start it
// and Close to tear it down.
func New(gw client.Gateway, opts ...Option) *Controller {
	c := &Controller{
		gateway:   gw,
		logger:    zap.NewNop(),
		publisher: &events.NoopPublisher{},
		history:   NopHistory{},
		limit:     model.DefaultPageSize,
		delay:     DefaultDebounce,
		changes:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id == "" {
		c.id = idgen.MustGenerate(idgen.ControllerPrefix)
	}
	c.logger = c.logger.With(zap.String("listing_id", c.id))
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.seq = NewSequencer(c.ctx)
	c.list = NewList()
	c.cursor = model.FirstPage(c.limit)
	c.search = newDebouncer(c.delay, c.applySearch)
	return c
}

// ID returns the controller's correlation id.
func (c *Controller) ID() string {
	return c.id
}

// Changes delivers a signal after every state change. Signals are coalesced;
// read Snapshot for the current state. The channel is closed by Close.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// Mount starts the controller from the current address-bar query and an
// optional server-rendered seed page. Only the first call has an effect.
//
//   - neutral filter on page one with a seed: the seed is shown, nothing is fetched
//   - filtered page one with a seed: the seed is dropped and the filter is fetched
//   - page one without a seed: the first page is fetched
//   - page N: pages one through N are fetched in order and appended
func (c *Controller) Mount(query string, seed *Seed) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.mounted {
		return
	}
	c.mounted = true

	filter, target := c.decodeLocked(query)
	c.filter = filter

	switch {
	case seed != nil && filter.IsNeutral():
		c.list.Replace(seed.Dogs, c.limit)
		c.cursor = model.FirstPage(c.limit)
		if !target.IsFirst() {
			c.hydrateLocked(target)
		}
	case target.IsFirst() && seed != nil:
		c.start(c.seq.Issue(KindFilterChange, filter, target))
	case target.IsFirst():
		c.start(c.seq.Issue(KindInitial, filter, target))
	default:
		c.hydrateLocked(target)
	}
	c.notify()
}

// SetFilter merges p into the active filter. If the result differs from the
// current filter, every in-flight request is superseded, the cursor returns
// to page one, that page is fetched and a history entry is pushed. It reports
// whether a fetch was issued.
func (c *Controller) SetFilter(p model.FilterPatch) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	next := p.Apply(c.filter)
	if next.Equal(c.filter) {
		return false
	}
	if err := model.ValidateFilter(next, c.known); err != nil {
		c.logger.Warn("rejecting filter", zap.Error(err))
		return false
	}
	c.mounted = true
	first := model.FirstPage(c.limit)
	c.filter = next
	c.cursor = first
	c.history.Push(urlcodec.Encode(next, first))
	c.start(c.seq.Issue(KindFilterChange, next, first))
	c.notify()
	return true
}

// ClearFilters resets every filter field to neutral.
func (c *Controller) ClearFilters() bool {
	return c.SetFilter(model.ResetPatch())
}

// SetSearch schedules a free-text search change. Only the last value given
// within the debounce window is applied.
func (c *Controller) SetSearch(text string) {
	c.search.Trigger(text)
}

func (c *Controller) applySearch(text string) {
	c.SetFilter(model.FilterPatch{Search: &text})
}

// LoadMore fetches the next page. It is a no-op while any fetch is in flight
// (a second click does not queue), when the last page was short, or while a
// failed filter change awaits Retry. It reports whether a fetch was issued.
func (c *Controller) LoadMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.seq.Outstanding(KindLoadMore) {
		return false
	}
	if c.seq.Busy() || !c.list.HasMore() {
		return false
	}
	if c.failed != nil && c.failed.Kind != KindLoadMore {
		return false
	}
	c.start(c.seq.Issue(KindLoadMore, c.filter, c.cursor.Next()))
	c.notify()
	return true
}

// Retry re-issues the most recently failed request with its original filter
// and cursor. It is a no-op when nothing failed or a fetch is in flight.
func (c *Controller) Retry() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.failed == nil || c.seq.Busy() {
		return false
	}
	prev := c.failed
	req := c.seq.Issue(prev.Kind, prev.Filter, prev.Cursor)
	req.Target = prev.Target
	c.start(req)
	c.notify()
	return true
}

// Navigate applies an address-bar change made outside the controller (back
// or forward navigation). The state is rebuilt from query without pushing a
// new history entry. It reports whether a fetch was issued.
func (c *Controller) Navigate(query string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	filter, target := c.decodeLocked(query)
	if filter.Equal(c.filter) && target == c.cursor && c.failed == nil && !c.seq.Busy() {
		return false
	}
	c.mounted = true
	c.filter = filter
	// Hydration advances the cursor page by page from here.
	c.cursor = model.FirstPage(c.limit)
	if target.IsFirst() {
		c.start(c.seq.Issue(KindFilterChange, filter, target))
	} else {
		c.hydrateLocked(target)
	}
	c.notify()
	return true
}

// Refresh refetches every page currently shown, for when the catalogue has
// changed upstream. It is a no-op before Mount or while a fetch is in flight.
func (c *Controller) Refresh() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.mounted || c.seq.Busy() {
		return false
	}
	if c.cursor.IsFirst() {
		c.start(c.seq.Issue(KindFilterChange, c.filter, c.cursor))
	} else {
		c.hydrateLocked(c.cursor)
	}
	c.notify()
	return true
}

// Snapshot returns the current view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Items:         c.list.Items(),
		IsLoading:     c.loading,
		IsLoadingMore: c.loadingMore,
		HasMore:       c.list.HasMore(),
		Filter:        c.filter,
		Page:          c.cursor.Page(),
		Query:         urlcodec.Encode(c.filter, c.cursor),
	}
	if c.err != nil {
		e := *c.err
		s.Err = &e
	}
	return s
}

// Close tears the controller down: pending search input is dropped, every
// outstanding request is cancelled, and Close waits for in-flight fetches to
// return. No response mutates state afterwards.
func (c *Controller) Close() {
	c.search.Stop()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.seq.SupersedeAll()
	c.loading = false
	c.loadingMore = false
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	close(c.changes)
}

// decodeLocked parses query, logs discarded parameters and corrects the
// address bar if anything was dropped.
func (c *Controller) decodeLocked(query string) (model.Filter, model.Cursor) {
	filter, cursor, invalid := urlcodec.Decode(query, c.known, c.limit)
	for _, p := range invalid {
		c.logger.Warn("discarding invalid url parameter",
			zap.String("param", p.Name),
			zap.String("value", p.Value),
			zap.String("reason", p.Reason),
		)
	}
	if len(invalid) > 0 {
		c.history.Replace(urlcodec.Encode(filter, cursor))
	}
	return filter, cursor
}

// hydrateLocked starts fetching pages one through target.
func (c *Controller) hydrateLocked(target model.Cursor) {
	req := c.seq.Issue(KindHydration, c.filter, model.FirstPage(c.limit))
	req.Target = target
	c.start(req)
}

// start supersedes everything older than req, sets the loading flags and
// runs the fetch. Callers hold c.mu.
func (c *Controller) start(req *Request) {
	c.seq.Supersede(req.Generation)
	if req.Kind == KindLoadMore {
		c.loadingMore = true
		c.loading = false
	} else {
		c.loading = true
		c.loadingMore = false
	}
	c.err = nil
	c.failed = nil

	c.logger.Debug("request issued",
		zap.Uint64("generation", req.Generation),
		zap.Stringer("kind", req.Kind),
		zap.Int("page", req.Cursor.Page()),
		zap.String("filter", urlcodec.Encode(req.Filter, model.Cursor{})),
	)

	c.wg.Add(1)
	go c.run(req)
}

func (c *Controller) run(req *Request) {
	defer c.wg.Done()
	page, err := c.gateway.ListDogs(req.Context(), req.Filter, req.Cursor)
	c.complete(req, page, err)
}

// outbound is an event queued while c.mu is held and published after release.
type outbound struct {
	topic   string
	payload any
}

// complete applies or discards the outcome of req.
func (c *Controller) complete(req *Request, page *client.Page, err error) {
	c.mu.Lock()
	accepted := !c.closed && c.seq.Accept(req)
	c.seq.Resolve(req)
	if !accepted {
		// Superseded or torn down: expected, not an error.
		c.mu.Unlock()
		return
	}

	var evt *outbound
	if err != nil {
		evt = c.failLocked(req, err)
	} else {
		evt = c.applyLocked(req, page)
	}
	c.notify()
	c.mu.Unlock()

	c.publish(evt)
}

func (c *Controller) applyLocked(req *Request, page *client.Page) *outbound {
	var dogs []model.Dog
	total := -1
	if page != nil {
		dogs = page.Dogs
		total = page.Total
	}

	c.logger.Debug("response accepted",
		zap.Uint64("generation", req.Generation),
		zap.Stringer("kind", req.Kind),
		zap.Int("page", req.Cursor.Page()),
		zap.Int("results", len(dogs)),
	)

	switch req.Kind {
	case KindInitial, KindFilterChange:
		c.list.Replace(dogs, c.limit)
		c.cursor = req.Cursor
		c.loading = false
		return &outbound{topic: events.TopicFilterChanged, payload: events.FilterChanged{
			ListingID: c.id,
			Filter:    c.filter,
			Results:   c.list.Len(),
			HasMore:   c.list.HasMore(),
		}}

	case KindLoadMore:
		added := c.list.Append(dogs, c.limit)
		if len(dogs) > 0 {
			c.cursor = req.Cursor
			c.history.Replace(urlcodec.Encode(c.filter, c.cursor))
		}
		c.loadingMore = false
		return &outbound{topic: events.TopicPageLoaded, payload: events.PageLoaded{
			ListingID: c.id,
			Filter:    c.filter,
			Page:      req.Cursor.Page(),
			Added:     added,
			Total:     total,
		}}

	case KindHydration:
		var added int
		if req.Cursor.IsFirst() {
			c.list.Replace(dogs, c.limit)
			added = c.list.Len()
		} else {
			added = c.list.Append(dogs, c.limit)
		}
		if req.Cursor.IsFirst() || len(dogs) > 0 {
			c.cursor = req.Cursor
		}
		if req.Cursor.Offset < req.Target.Offset && c.list.HasMore() {
			next := c.seq.Issue(KindHydration, req.Filter, req.Cursor.Next())
			next.Target = req.Target
			c.start(next)
		} else {
			c.loading = false
			if c.cursor != req.Target {
				// The listing ran out before the deep-linked page.
				c.history.Replace(urlcodec.Encode(c.filter, c.cursor))
			}
		}
		return &outbound{topic: events.TopicPageLoaded, payload: events.PageLoaded{
			ListingID: c.id,
			Filter:    c.filter,
			Page:      req.Cursor.Page(),
			Added:     added,
			Total:     total,
		}}
	}
	return nil
}

func (c *Controller) failLocked(req *Request, err error) *outbound {
	c.loading = false
	c.loadingMore = false
	c.err = newErrorInfo(req.Kind, err)
	c.failed = req

	c.logger.Warn("listing fetch failed",
		zap.Uint64("generation", req.Generation),
		zap.Stringer("kind", req.Kind),
		zap.Int("page", req.Cursor.Page()),
		zap.Error(err),
	)

	return &outbound{topic: events.TopicFetchFailed, payload: events.FetchFailed{
		ListingID:  c.id,
		Kind:       req.Kind.String(),
		Filter:     req.Filter,
		Page:       req.Cursor.Page(),
		StatusCode: c.err.StatusCode,
		Error:      c.err.Message,
	}}
}

func (c *Controller) publish(evt *outbound) {
	if evt == nil {
		return
	}
	if err := c.publisher.Publish(c.ctx, evt.topic, evt.payload); err != nil {
		c.logger.Debug("publishing listing event", zap.String("topic", evt.topic), zap.Error(err))
	}
}

// notify signals Changes without blocking. Callers hold c.mu.
func (c *Controller) notify() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}
