package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/uguryavuz/ath-events/internal/logger"
)

const (
	// cardCountJS counts the event cards currently in the DOM.
	cardCountJS = `document.querySelectorAll('a.product-item[href]').length`

	// clickLoadMoreJS clicks the first visible "Load more" control and
	// reports whether one was found.
	clickLoadMoreJS = `(() => {
		const els = Array.from(document.querySelectorAll('button, a'));
		const btn = els.find(el =>
			el.textContent.trim().toLowerCase().includes('load more') &&
			el.offsetParent !== null);
		if (!btn) return false;
		btn.click();
		return true;
	})()`

	scrollToBottomJS = `window.scrollTo(0, document.body.scrollHeight)`

	maxLoadMoreClicks = 80
	maxScrollPasses   = 8

	// Quiescence budgets bound how long a pass waits for the listing
	// request triggered by a click or scroll to land before the card
	// count is compared. Without this wait a slow response would make the
	// count look unchanged and end the expansion early.
	clickQuiesceBudget  = 30 * time.Second
	scrollQuiesceBudget = 15 * time.Second
	quiescePoll         = 250 * time.Millisecond

	// Settle delays let the client-side framework re-render after a click
	// or scroll before the card count is re-checked.
	clickSettle  = 600 * time.Millisecond
	scrollSettle = 800 * time.Millisecond

	navigateTimeout = 60 * time.Second
	stepTimeout     = 15 * time.Second
)

// Materializer returns a fully expanded DOM snapshot for a listing URL.
type Materializer interface {
	Snapshot(ctx context.Context, url string) (string, error)
}

// Chrome materializes pages with a headless Chrome instance. It repeatedly
// invokes the page's "load more" control and scrolls to the bottom until the
// event-card count stops growing, then captures the document HTML.
type Chrome struct{}

// NewChrome creates a Chrome materializer.
func NewChrome() *Chrome {
	return &Chrome{}
}

// Snapshot navigates to url, expands all lazily-loaded content, and returns
// the document's outer HTML. Navigation failure is fatal; every failure
// after that point degrades to "stop expanding, return what is loaded".
func (c *Chrome) Snapshot(ctx context.Context, url string) (string, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	navCtx, cancelNav := context.WithTimeout(tabCtx, navigateTimeout)
	defer cancelNav()
	if err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}

	c.expandLoadMore(tabCtx)
	c.expandByScrolling(tabCtx)

	var html string
	htmlCtx, cancelHTML := context.WithTimeout(tabCtx, stepTimeout)
	defer cancelHTML()
	if err := chromedp.Run(htmlCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("capturing page HTML: %w", err)
	}
	return html, nil
}

// expandLoadMore clicks the "load more" control until it disappears, the
// card count stops growing, or the click budget runs out.
func (c *Chrome) expandLoadMore(ctx context.Context) {
	for i := 0; i < maxLoadMoreClicks; i++ {
		before, ok := c.cardCount(ctx)
		if !ok {
			return
		}

		clicked := false
		if err := c.run(ctx, chromedp.Evaluate(clickLoadMoreJS, &clicked)); err != nil || !clicked {
			return
		}
		if !c.awaitGrowth(ctx, before, clickQuiesceBudget) {
			return
		}
		c.run(ctx, chromedp.Sleep(clickSettle))

		after, ok := c.cardCount(ctx)
		if !ok || after <= before {
			return
		}
		logger.Debug("load more expanded cards", logger.Fields{"before": before, "after": after})
	}
}

// expandByScrolling triggers scroll-based lazy loading as a secondary pass,
// with the same stopping rule.
func (c *Chrome) expandByScrolling(ctx context.Context) {
	for i := 0; i < maxScrollPasses; i++ {
		before, ok := c.cardCount(ctx)
		if !ok {
			return
		}
		if err := c.run(ctx, chromedp.Evaluate(scrollToBottomJS, nil)); err != nil {
			return
		}
		if !c.awaitGrowth(ctx, before, scrollQuiesceBudget) {
			return
		}
		c.run(ctx, chromedp.Sleep(scrollSettle))

		after, ok := c.cardCount(ctx)
		if !ok || after <= before {
			return
		}
	}
}

// awaitGrowth waits, within budget, for the card count to move past base.
func (c *Chrome) awaitGrowth(ctx context.Context, base int, budget time.Duration) bool {
	return pollForGrowth(base, budget, quiescePoll,
		func() (int, bool) { return c.cardCount(ctx) },
		func(d time.Duration) bool { return c.run(ctx, chromedp.Sleep(d)) == nil },
	)
}

// pollForGrowth polls count until it exceeds base, a poll fails, or the
// budget runs out. The listing request fired by a click or scroll may still
// be in flight when the action returns, so the count is re-read on an
// interval instead of once.
func pollForGrowth(base int, budget, interval time.Duration, count func() (int, bool), sleep func(time.Duration) bool) bool {
	deadline := time.Now().Add(budget)
	for time.Now().Before(deadline) {
		if !sleep(interval) {
			return false
		}
		n, ok := count()
		if !ok {
			return false
		}
		if n > base {
			return true
		}
	}
	return false
}

func (c *Chrome) cardCount(ctx context.Context) (int, bool) {
	var n int
	if err := c.run(ctx, chromedp.Evaluate(cardCountJS, &n)); err != nil {
		return 0, false
	}
	return n, true
}

// run executes one browser action under the per-step timeout.
func (c *Chrome) run(ctx context.Context, action chromedp.Action) error {
	stepCtx, cancel := context.WithTimeout(ctx, stepTimeout)
	defer cancel()
	return chromedp.Run(stepCtx, action)
}
