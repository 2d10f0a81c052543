package models

import "time"

// SalesBucket is one time-period grouping of orders, computed on demand and
// never persisted.
type SalesBucket struct {
	Period  string    `json:"period"` // canonical label, e.g. "2025-03"
	Start   time.Time `json:"start"`
	Count   int       `json:"count"`
	Sum     float64   `json:"sum"`
	Average float64   `json:"average"`
}

// ProductProfit is one row of the profitability breakdown.
type ProductProfit struct {
	ProductID       uint    `json:"product_id"`
	ProductName     string  `json:"product_name"`
	UnitsSold       int     `json:"units_sold"`
	Revenue         float64 `json:"revenue"`
	AvgSellingPrice float64 `json:"avg_selling_price"`
	CatalogPrice    float64 `json:"catalog_price"`
	MarginPct       float64 `json:"margin_pct"`
}

// ClientRank is one row of the top-clients ranking.
type ClientRank struct {
	ClientID   uint    `json:"client_id"`
	ClientName string  `json:"client_name"`
	OrderCount int     `json:"order_count"`
	Total      float64 `json:"total"`
}

// OrderPoint is the minimal order projection the aggregation engine works on.
type OrderPoint struct {
	OrderID  uint
	ClientID uint
	Date     time.Time
	Amount   float64
}

// LineItemPoint is the line-item projection used by profitability grouping.
type LineItemPoint struct {
	ProductID    uint
	ProductName  string
	CatalogPrice float64
	Quantity     int
	UnitPrice    float64
}
