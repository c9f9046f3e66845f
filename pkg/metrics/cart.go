package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records counters for cart mutations and their failure modes.
type CartMetrics struct {
	adds         prometheus.Counter
	suppressions prometheus.Counter
	storageFails prometheus.Counter
	checkoutURLs prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	adds := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_adds_total",
		Help: "Cart add operations dispatched.",
	})
	suppressions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_duplicate_adds_suppressed_total",
		Help: "Add operations suppressed as rapid duplicates.",
	})
	storageFails := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_storage_failures_total",
		Help: "Cart snapshot reads/writes that failed and were absorbed.",
	})
	checkoutURLs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_checkout_urls_total",
		Help: "Checkout URLs synthesized for non-empty carts.",
	})
	reg.MustRegister(adds, suppressions, storageFails, checkoutURLs)
	return &CartMetrics{
		adds:         adds,
		suppressions: suppressions,
		storageFails: storageFails,
		checkoutURLs: checkoutURLs,
	}
}

// IncAdd increments the dispatched-add counter.
func (c *CartMetrics) IncAdd() {
	if c == nil || c.adds == nil {
		return
	}
	c.adds.Inc()
}

// IncSuppressed increments the duplicate-suppression counter.
func (c *CartMetrics) IncSuppressed() {
	if c == nil || c.suppressions == nil {
		return
	}
	c.suppressions.Inc()
}

// IncStorageFailure increments the absorbed storage failure counter.
func (c *CartMetrics) IncStorageFailure() {
	if c == nil || c.storageFails == nil {
		return
	}
	c.storageFails.Inc()
}

// IncCheckoutURL increments the checkout URL counter.
func (c *CartMetrics) IncCheckoutURL() {
	if c == nil || c.checkoutURLs == nil {
		return
	}
	c.checkoutURLs.Inc()
}
