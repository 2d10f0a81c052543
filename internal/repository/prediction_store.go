package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	xhttp "BizPulse/pkg/http"
	pkgmysql "BizPulse/pkg/mysql"
)

// MySQLPredictionStore implements PredictionStore backed by GORM/MySQL.
type MySQLPredictionStore struct {
	db *gorm.DB
}

func NewMySQLPredictionStore(c *pkgmysql.Client) *MySQLPredictionStore {
	return &MySQLPredictionStore{db: c.DB()}
}

// ReplaceActive swaps the active churn prediction for exactly the clients in
// preds. Other clients' active rows are untouched. Either every row lands or
// none does.
func (s *MySQLPredictionStore) ReplaceActive(ctx context.Context, preds []models.ChurnPrediction) error {
	if len(preds) == 0 {
		return nil
	}
	clientIDs := make([]uint, 0, len(preds))
	for i := range preds {
		preds[i].Active = true
		clientIDs = append(clientIDs, preds[i].ClientID)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ChurnPrediction{}).
			Where("client_id IN ? AND active = ?", clientIDs, true).
			Update("active", false).Error; err != nil {
			return fmt.Errorf("deactivate predictions: %w", err)
		}
		if err := tx.Create(&preds).Error; err != nil {
			return fmt.Errorf("insert predictions: %w", err)
		}
		return nil
	})
	if err != nil {
		return xhttp.PersistenceError(err)
	}
	return nil
}

func (s *MySQLPredictionStore) ListActiveChurn(ctx context.Context, f domrepo.ChurnFilter) ([]models.ChurnPrediction, int64, error) {
	q := s.db.WithContext(ctx).
		Model(&models.ChurnPrediction{}).
		Where("active = ?", true)
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.MinTier != "" {
		q = q.Where("tier IN ?", models.TiersAtLeast(f.MinTier))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count predictions: %w", err)
	}

	q = q.Order("score DESC, client_id ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var preds []models.ChurnPrediction
	if err := q.Find(&preds).Error; err != nil {
		return nil, 0, fmt.Errorf("list predictions: %w", err)
	}
	return preds, total, nil
}

func (s *MySQLPredictionStore) InsertForecasts(ctx context.Context, points []models.ForecastPoint) error {
	if len(points) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&points).Error; err != nil {
		return xhttp.PersistenceError(fmt.Errorf("insert forecasts: %w", err))
	}
	return nil
}
