package analytics

// DayBucket is one point of the revenue time series. Every day of the
// requested window gets a bucket, zero-filled when no orders landed on it.
type DayBucket struct {
	Date       string  `json:"date"` // YYYY-MM-DD, UTC
	Revenue    float64 `json:"revenue"`
	OrderCount int     `json:"order_count"`
}

// WeekdayBucket counts orders per day of week, Monday first.
type WeekdayBucket struct {
	Weekday    string `json:"weekday"`
	OrderCount int    `json:"order_count"`
}

// StatusBucket counts orders per lifecycle status.
type StatusBucket struct {
	Status     string `json:"status"`
	OrderCount int    `json:"order_count"`
}

// ProductSales is one row of the top-products ranking.
type ProductSales struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}
