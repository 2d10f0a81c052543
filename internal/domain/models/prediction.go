package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Risk tiers derived from the continuous churn score.
const (
	TierLow      = "LOW"
	TierMedium   = "MEDIUM"
	TierHigh     = "HIGH"
	TierCritical = "CRITICAL"
)

// TierForScore maps a continuous score in [0,1] to a discrete risk tier.
// Boundaries are inclusive on the lower edge: exactly 0.8 is CRITICAL,
// exactly 0.4 is MEDIUM.
func TierForScore(score float64) string {
	switch {
	case score >= 0.8:
		return TierCritical
	case score >= 0.6:
		return TierHigh
	case score >= 0.4:
		return TierMedium
	default:
		return TierLow
	}
}

// TierAtLeast reports whether tier ranks at or above min.
func TierAtLeast(tier, min string) bool {
	return tierRank(tier) >= tierRank(min)
}

// TiersAtLeast returns every tier ranking at or above min, for IN filters.
func TiersAtLeast(min string) []string {
	out := make([]string, 0, 4)
	for _, t := range []string{TierLow, TierMedium, TierHigh, TierCritical} {
		if TierAtLeast(t, min) {
			out = append(out, t)
		}
	}
	return out
}

func tierRank(tier string) int {
	switch tier {
	case TierCritical:
		return 3
	case TierHigh:
		return 2
	case TierMedium:
		return 1
	default:
		return 0
	}
}

// FactorMap stores the model's contributing factors as a JSON column.
type FactorMap map[string]float64

func (m FactorMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *FactorMap) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	case nil:
		*m = FactorMap{}
		return nil
	default:
		return fmt.Errorf("unsupported factor map source type %T", src)
	}
}

// ChurnPrediction is one scored snapshot of a client. At most one row per
// client carries Active=true; replaced rows are retired in place, never
// deleted, so the table doubles as an audit history.
type ChurnPrediction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ClientID    uint      `json:"client_id" gorm:"not null;index:idx_churn_client_active"`
	Score       float64   `json:"score"`
	Tier        string    `json:"tier" gorm:"index"`
	Factors     FactorMap `json:"factors" gorm:"type:json"`
	ModelType   string    `json:"model_type"`
	PredictedAt time.Time `json:"predicted_at"`
	Active      bool      `json:"active" gorm:"index:idx_churn_client_active"`
}

// ForecastPoint is one predicted revenue point. Rows are append-only and
// grouped by BatchID; a batch shares one request's period and scope.
type ForecastPoint struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	BatchID    string    `json:"batch_id" gorm:"index"`
	ClientID   *uint     `json:"client_id,omitempty" gorm:"index"` // nil = whole business
	Date       time.Time `json:"date"`
	Amount     float64   `json:"amount"`
	Confidence float64   `json:"confidence"`
	Period     string    `json:"period"` // daily, weekly, monthly
	ModelType  string    `json:"model_type"`
	CreatedAt  time.Time `json:"created_at"`
}
