package analytics

import (
	"sort"
	"time"

	"github.com/packline/packline-backend/internal/modules/order"
)

// weekdays is the reporting order of the weekday histogram.
var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// RevenueByDay buckets orders into one entry per UTC day across [from, to].
// Cancelled orders count for nothing; the sum of bucket revenue equals the
// sum of order totals for the non-cancelled orders in the window.
func RevenueByDay(orders []*order.Order, from, to time.Time) []DayBucket {
	from = from.UTC().Truncate(24 * time.Hour)
	to = to.UTC().Truncate(24 * time.Hour)

	index := map[string]int{}
	var buckets []DayBucket
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		index[key] = len(buckets)
		buckets = append(buckets, DayBucket{Date: key})
	}

	for _, o := range orders {
		if o.Status == order.StatusCancelled {
			continue
		}
		key := o.CreatedAt.UTC().Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			continue
		}
		buckets[i].Revenue += o.Total
		buckets[i].OrderCount++
	}
	return buckets
}

// OrdersByWeekday counts all orders per day of week, Monday first.
func OrdersByWeekday(orders []*order.Order) []WeekdayBucket {
	counts := map[time.Weekday]int{}
	for _, o := range orders {
		counts[o.CreatedAt.UTC().Weekday()]++
	}

	buckets := make([]WeekdayBucket, 0, len(weekdays))
	for _, wd := range weekdays {
		buckets = append(buckets, WeekdayBucket{Weekday: wd.String(), OrderCount: counts[wd]})
	}
	return buckets
}

// OrdersByStatus counts orders per lifecycle status, every status present.
func OrdersByStatus(orders []*order.Order) []StatusBucket {
	statuses := []order.OrderStatus{
		order.StatusPending, order.StatusProcessing, order.StatusShipped,
		order.StatusDelivered, order.StatusCancelled,
	}
	counts := map[order.OrderStatus]int{}
	for _, o := range orders {
		counts[o.Status]++
	}

	buckets := make([]StatusBucket, 0, len(statuses))
	for _, s := range statuses {
		buckets = append(buckets, StatusBucket{Status: string(s), OrderCount: counts[s]})
	}
	return buckets
}

// TopProducts ranks products by quantity sold across all non-cancelled order
// lines, ties broken by revenue then name.
func TopProducts(orders []*order.Order, limit int) []ProductSales {
	byProduct := map[string]*ProductSales{}
	for _, o := range orders {
		if o.Status == order.StatusCancelled {
			continue
		}
		for _, item := range o.Items {
			p, ok := byProduct[item.ProductID]
			if !ok {
				p = &ProductSales{ProductID: item.ProductID, ProductName: item.ProductName}
				byProduct[item.ProductID] = p
			}
			p.QuantitySold += item.Quantity
			p.Revenue += item.LineTotal
		}
	}

	ranked := make([]ProductSales, 0, len(byProduct))
	for _, p := range byProduct {
		ranked = append(ranked, *p)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].QuantitySold != ranked[j].QuantitySold {
			return ranked[i].QuantitySold > ranked[j].QuantitySold
		}
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].ProductName < ranked[j].ProductName
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
