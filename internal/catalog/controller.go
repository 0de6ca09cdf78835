// Package catalog keeps a paginated, filterable view of the remote catalog in sync with
// the user's search, category and page navigation events.
package catalog

import (
	"context"
	"sync"
	"time"

	"bookstore-client/internal/actions"
	"bookstore-client/internal/components/assert"
	"bookstore-client/internal/components/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const (
	report_controller_fetch       = "controller.fetch"
	report_controller_stale       = "controller.stale"
	report_controller_add_to_cart = "controller.add-to-cart"
	report_controller_metrics     = "controller.metrics"
)

type Phase int

const (
	Idle Phase = iota
	Fetching
	Applied
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// CartAdder is the side-effecting add to cart call, implemented by *bookstore.Client.
type CartAdder interface {
	AddToCart(ctx context.Context, bookId int64) error
}

type Options struct {
	PageSize int
	// per fetch, 0 means 30 seconds
	Timeout time.Duration
}

// Controller is the catalog view controller. Every event mutates the query state and
// issues a fetch in the background, fetches are numbered in issue order and only the
// result of the most recently issued one is ever applied to the view.
type Controller struct {
	router Router
	view   View
	cart   CartAdder
	policy actions.Policy
	tel    telemetry.API
	counts metric.Int64Counter

	mu     sync.Mutex
	state  *Holder
	issued uint64
	phase  Phase
	shown  *PageResult

	inflight sync.WaitGroup
}

func NewController(
	source Source,
	cart CartAdder,
	view View,
	policy actions.Policy,
	tel telemetry.API,
	opts Options,
) *Controller {
	assert.NotNil(source)
	assert.NotNil(cart)
	assert.NotNil(view)
	assert.NotNil(tel)
	assert.Positive("page size", opts.PageSize)

	tel = telemetry.NewScopedAPI("catalog", tel)

	counts, err := otel.Meter("bookstore/catalog").Int64Counter(
		"catalog.fetches",
		metric.WithDescription("Catalog fetches by how they settled."),
	)
	if err != nil {
		tel.ReportWarning(report_controller_metrics, err)
		counts = noop.Int64Counter{}
	}

	return &Controller{
		router: NewRouter(source, opts.Timeout),
		view:   view,
		cart:   cart,
		policy: policy,
		tel:    tel,
		counts: counts,
		state:  NewHolder(opts.PageSize),
	}
}

// Load fetches the page for the current query state, it is the initial event.
func (c *Controller) Load(ctx context.Context) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issue(ctx)
}

func (c *Controller) SetKeyword(ctx context.Context, text string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SetKeyword(text)
	return c.issue(ctx)
}

func (c *Controller) SetCategory(ctx context.Context, text string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SetCategory(text)
	return c.issue(ctx)
}

// SetPage jumps to the 0-indexed page `n` of the current filter.
func (c *Controller) SetPage(ctx context.Context, n int) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.state.SetPage(n)
	if err != nil {
		return 0, err
	}
	return c.issue(ctx), nil
}

// Next moves one page forward, it is unavailable while the displayed page is the last one.
func (c *Controller) Next(ctx context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shown == nil || c.shown.IsLast {
		return 0, ErrNextUnavailable
	}
	return c.navigate(ctx, 1)
}

// Previous moves one page back, it is unavailable while the displayed page is the first one.
func (c *Controller) Previous(ctx context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shown == nil || c.shown.IsFirst {
		return 0, ErrPreviousUnavailable
	}
	return c.navigate(ctx, -1)
}

// navigate steps from the displayed page, not the last requested one, so a failed
// fetch does not shift where the controls lead. It must be called with c.mu held.
func (c *Controller) navigate(ctx context.Context, delta int) (uint64, error) {
	err := c.state.SetPage(c.shown.PageNumber + delta)
	if err != nil {
		return 0, err
	}
	return c.issue(ctx), nil
}

// issue must be called with c.mu held.
func (c *Controller) issue(ctx context.Context) uint64 {
	c.issued++
	seq := c.issued
	route := Resolve(c.state.Current())
	c.phase = Fetching

	c.tel.ReportDebug(report_controller_fetch, seq, route.String())

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		page, err := c.router.Fetch(ctx, route)
		c.settle(ctx, seq, route, page, err)
	}()

	return seq
}

func (c *Controller) settle(ctx context.Context, seq uint64, route Route, page PageResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.issued {
		c.tel.ReportDebug(report_controller_stale, seq, c.issued, route.String())
		c.counts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "stale")))
		return
	}

	if err != nil {
		c.phase = Failed
		c.tel.ReportWarning(report_controller_fetch, err, seq)
		c.counts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failed")))
		c.policy.Notifier().Fail(fetchFailureMessage(route, err))
		return
	}

	c.phase = Applied
	c.shown = &page
	c.counts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "applied")))
	c.view.Show(Render(page))
}

func fetchFailureMessage(route Route, err error) string {
	switch route.Kind {
	case SearchByKeyword:
		return "Error searching books: " + err.Error()
	case FilterByCategory:
		return "Error filtering category: " + err.Error()
	}
	return "Error loading books: " + err.Error()
}

// AddToCart adds a displayed, in stock item to the cart. The outcome is surfaced through
// the action policy, the query state and the view are left untouched.
func (c *Controller) AddToCart(ctx context.Context, bookId int64) (actions.Outcome, error) {
	c.mu.Lock()
	var (
		item Item
		ok   bool
	)
	if c.shown != nil {
		item, ok = c.shown.find(bookId)
	}
	c.mu.Unlock()

	if !ok {
		return actions.Failed, ErrNotDisplayed
	}
	if item.Stock <= 0 {
		return actions.Failed, ErrOutOfStock
	}

	err := c.cart.AddToCart(ctx, bookId)
	if err != nil {
		c.tel.ReportDebug(report_controller_add_to_cart, bookId, err)
	}
	return c.policy.Report(err, actions.Messages{
		Success: "Added to cart!",
		Failure: "Failed to add to cart",
	}), nil
}

// Wait blocks until every issued fetch has settled.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) Query() QueryState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Current()
}

// Shown returns the page currently applied to the view, if any.
func (c *Controller) Shown() (PageResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shown == nil {
		return PageResult{}, false
	}
	return *c.shown, true
}
