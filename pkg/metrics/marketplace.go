package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MarketplaceMetrics records cart and checkout outcomes.
type MarketplaceMetrics struct {
	cartOps        *prometheus.CounterVec
	checkoutOrders *prometheus.CounterVec
}

// NewMarketplaceMetrics registers the marketplace metrics on the provided registerer.
func NewMarketplaceMetrics(reg prometheus.Registerer) *MarketplaceMetrics {
	if reg == nil {
		return &MarketplaceMetrics{}
	}
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutations by operation and result.",
	}, []string{"operation", "result"})
	checkoutOrders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_orders_total",
		Help: "Per-seller order writes produced by checkout, by result.",
	}, []string{"result"})
	reg.MustRegister(cartOps, checkoutOrders)
	return &MarketplaceMetrics{
		cartOps:        cartOps,
		checkoutOrders: checkoutOrders,
	}
}

// IncCartOp increments the cart operation counter.
func (m *MarketplaceMetrics) IncCartOp(operation, result string) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(operation), normalizeLabel(result)).Inc()
}

// IncCheckoutOrder increments the checkout order counter.
func (m *MarketplaceMetrics) IncCheckoutOrder(result string) {
	if m == nil || m.checkoutOrders == nil {
		return
	}
	m.checkoutOrders.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
