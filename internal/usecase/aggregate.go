package usecase

import (
	"sort"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	"BizPulse/pkg/util"
)

// BucketOrders groups order points into period buckets, ascending by period
// start. Truncation is to UTC day, ISO week (Monday) or calendar month.
func BucketOrders(points []models.OrderPoint, period domrepo.Period) []models.SalesBucket {
	index := make(map[string]int)
	buckets := make([]models.SalesBucket, 0)

	for _, p := range points {
		start := util.TruncatePeriod(p.Date, string(period))
		key := util.PeriodKey(start, string(period))
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, models.SalesBucket{Period: key, Start: start})
		}
		buckets[i].Count++
		buckets[i].Sum += p.Amount
	}

	for i := range buckets {
		if buckets[i].Count > 0 {
			buckets[i].Average = buckets[i].Sum / float64(buckets[i].Count)
		}
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Start.Before(buckets[j].Start) })
	return buckets
}

// GroupProfitability aggregates line items per product and derives margins,
// sorted descending by revenue and truncated to limit. Products with equal
// revenue keep first-seen order; callers must not rely on a deterministic
// tie-break.
func GroupProfitability(items []models.LineItemPoint, limit int) []models.ProductProfit {
	index := make(map[uint]int)
	rows := make([]models.ProductProfit, 0)

	for _, it := range items {
		i, ok := index[it.ProductID]
		if !ok {
			i = len(rows)
			index[it.ProductID] = i
			rows = append(rows, models.ProductProfit{
				ProductID:    it.ProductID,
				ProductName:  it.ProductName,
				CatalogPrice: it.CatalogPrice,
			})
		}
		rows[i].UnitsSold += it.Quantity
		rows[i].Revenue += float64(it.Quantity) * it.UnitPrice
	}

	for i := range rows {
		if rows[i].UnitsSold > 0 {
			rows[i].AvgSellingPrice = rows[i].Revenue / float64(rows[i].UnitsSold)
		}
		if rows[i].AvgSellingPrice != 0 {
			rows[i].MarginPct = (rows[i].AvgSellingPrice - rows[i].CatalogPrice) / rows[i].AvgSellingPrice * 100
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Revenue > rows[j].Revenue })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// RankClients aggregates order totals per client, sorted descending by total
// and truncated to limit. Equal totals keep first-seen order.
func RankClients(points []models.OrderPoint, names map[uint]string, limit int) []models.ClientRank {
	index := make(map[uint]int)
	rows := make([]models.ClientRank, 0)

	for _, p := range points {
		i, ok := index[p.ClientID]
		if !ok {
			i = len(rows)
			index[p.ClientID] = i
			rows = append(rows, models.ClientRank{ClientID: p.ClientID, ClientName: names[p.ClientID]})
		}
		rows[i].OrderCount++
		rows[i].Total += p.Amount
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
