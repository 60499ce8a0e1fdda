package order

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// csvHeader is the column layout of the admin order export.
var csvHeader = []string{
	"order_number", "status", "created_at", "customer_name",
	"city", "country", "item_count",
	"subtotal", "discount", "shipping", "vat", "total", "currency",
}

// WriteCSV streams one row per order to w. The row count always equals
// len(orders); filtering happens at the query, not here.
func WriteCSV(w io.Writer, orders []*Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, o := range orders {
		itemCount := 0
		for _, item := range o.Items {
			itemCount += item.Quantity
		}
		row := []string{
			o.OrderNumber,
			string(o.Status),
			o.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			o.ShippingAddress.FullName,
			o.ShippingAddress.City,
			o.ShippingAddress.Country,
			strconv.Itoa(itemCount),
			money(o.Subtotal),
			money(o.Discount),
			money(o.Shipping),
			money(o.VAT),
			money(o.Total),
			o.Currency,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
