package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"BizPulse/internal/domain/models"
	xhttp "BizPulse/pkg/http"
	pkgmysql "BizPulse/pkg/mysql"
)

// MySQLClientStore implements ClientStore backed by GORM/MySQL.
type MySQLClientStore struct {
	db *gorm.DB
}

func NewMySQLClientStore(c *pkgmysql.Client) *MySQLClientStore {
	return &MySQLClientStore{db: c.DB()}
}

func (s *MySQLClientStore) GetByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	err := s.db.WithContext(ctx).First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, xhttp.NotFoundErrorf("client %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &client, nil
}

func (s *MySQLClientStore) ListByIDs(ctx context.Context, ids []uint) ([]models.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var clients []models.Client
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *MySQLClientStore) ListActive(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := s.db.WithContext(ctx).
		Where("status = ?", models.ClientStatusActive).
		Order("id ASC").
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("list active clients: %w", err)
	}
	return clients, nil
}

func (s *MySQLClientStore) CountVisits(ctx context.Context, clientID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("client_id = ?", clientID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count visits: %w", err)
	}
	return n, nil
}

func (s *MySQLClientStore) FeedbackStats(ctx context.Context, clientID uint) (int64, float64, error) {
	var row struct {
		N   int64
		Avg float64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Select("COUNT(*) AS n, COALESCE(AVG(rating), 0) AS avg").
		Where("client_id = ?", clientID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("feedback stats: %w", err)
	}
	return row.N, row.Avg, nil
}
