package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packline/packline-backend/internal/modules/order"
)

func orderAt(day string, status order.OrderStatus, total float64, items ...*order.OrderItem) *order.Order {
	t, _ := time.Parse("2006-01-02", day)
	return &order.Order{
		ID:        uuid.New(),
		Status:    status,
		Total:     total,
		Items:     items,
		CreatedAt: t.Add(13 * time.Hour),
	}
}

func line(productID, name string, qty int, lineTotal float64) *order.OrderItem {
	return &order.OrderItem{
		ID: uuid.New(), ProductID: productID, ProductName: name,
		Quantity: qty, LineTotal: lineTotal,
	}
}

func TestRevenueByDay_ZeroFilledWindow(t *testing.T) {
	from, _ := time.Parse("2006-01-02", "2026-05-04") // Monday
	to, _ := time.Parse("2006-01-02", "2026-05-10")   // Sunday

	orders := []*order.Order{
		orderAt("2026-05-04", order.StatusDelivered, 120),
		orderAt("2026-05-04", order.StatusPending, 80),
		orderAt("2026-05-07", order.StatusShipped, 59.5),
		orderAt("2026-05-08", order.StatusCancelled, 999), // excluded
	}

	buckets := RevenueByDay(orders, from, to)
	require.Len(t, buckets, 7, "one bucket per day of the window")

	assert.Equal(t, "2026-05-04", buckets[0].Date)
	assert.Equal(t, 200.0, buckets[0].Revenue)
	assert.Equal(t, 2, buckets[0].OrderCount)
	assert.Equal(t, 0.0, buckets[1].Revenue)
	assert.Equal(t, 59.5, buckets[3].Revenue)
	assert.Equal(t, 0.0, buckets[4].Revenue, "cancelled order contributes nothing")
}

func TestRevenueByDay_SumMatchesOrderTotals(t *testing.T) {
	from, _ := time.Parse("2006-01-02", "2026-05-01")
	to, _ := time.Parse("2006-01-02", "2026-05-31")

	orders := []*order.Order{
		orderAt("2026-05-02", order.StatusDelivered, 101.25),
		orderAt("2026-05-02", order.StatusDelivered, 48.75),
		orderAt("2026-05-17", order.StatusProcessing, 250),
		orderAt("2026-05-31", order.StatusPending, 99.99),
	}

	buckets := RevenueByDay(orders, from, to)

	var bucketSum, orderSum float64
	for _, b := range buckets {
		bucketSum += b.Revenue
	}
	for _, o := range orders {
		orderSum += o.Total
	}
	assert.InDelta(t, orderSum, bucketSum, 1e-9)
}

func TestOrdersByWeekday(t *testing.T) {
	orders := []*order.Order{
		orderAt("2026-05-04", order.StatusPending, 10),   // Monday
		orderAt("2026-05-11", order.StatusDelivered, 10), // Monday
		orderAt("2026-05-06", order.StatusShipped, 10),   // Wednesday
	}

	buckets := OrdersByWeekday(orders)
	require.Len(t, buckets, 7)
	assert.Equal(t, "Monday", buckets[0].Weekday)
	assert.Equal(t, 2, buckets[0].OrderCount)
	assert.Equal(t, 1, buckets[2].OrderCount)
	assert.Equal(t, 0, buckets[6].OrderCount)
}

func TestOrdersByStatus_AllStatusesPresent(t *testing.T) {
	orders := []*order.Order{
		orderAt("2026-05-04", order.StatusPending, 10),
		orderAt("2026-05-05", order.StatusPending, 10),
		orderAt("2026-05-06", order.StatusCancelled, 10),
	}

	buckets := OrdersByStatus(orders)
	require.Len(t, buckets, 5)

	counts := map[string]int{}
	for _, b := range buckets {
		counts[b.Status] = b.OrderCount
	}
	assert.Equal(t, 2, counts["pending"])
	assert.Equal(t, 1, counts["cancelled"])
	assert.Equal(t, 0, counts["shipped"])
}

func TestTopProducts_RankingAndLimit(t *testing.T) {
	orders := []*order.Order{
		orderAt("2026-05-04", order.StatusDelivered, 0,
			line("box", "Shipping Box M", 100, 900),
			line("tape", "Packing Tape", 40, 100)),
		orderAt("2026-05-05", order.StatusShipped, 0,
			line("box", "Shipping Box M", 50, 450),
			line("wrap", "Bubble Wrap", 60, 300)),
		orderAt("2026-05-06", order.StatusCancelled, 0,
			line("tape", "Packing Tape", 5000, 9999)), // excluded
	}

	top := TopProducts(orders, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "box", top[0].ProductID)
	assert.Equal(t, 150, top[0].QuantitySold)
	assert.Equal(t, 1350.0, top[0].Revenue)
	assert.Equal(t, "wrap", top[1].ProductID)

	full := TopProducts(orders, 0)
	assert.Len(t, full, 3, "limit 0 returns every product")
}
