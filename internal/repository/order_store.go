package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	pkgmysql "BizPulse/pkg/mysql"
)

// MySQLOrderStore implements OrderStore backed by GORM/MySQL. Cancelled
// orders never enter the projections.
type MySQLOrderStore struct {
	db *gorm.DB
}

func NewMySQLOrderStore(c *pkgmysql.Client) *MySQLOrderStore {
	return &MySQLOrderStore{db: c.DB()}
}

func (s *MySQLOrderStore) scoped(ctx context.Context, f domrepo.OrderFilter) *gorm.DB {
	q := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("orders.status <> ?", models.OrderStatusCancelled)
	if f.ClientID != nil {
		q = q.Where("orders.client_id = ?", *f.ClientID)
	}
	if f.From != nil {
		q = q.Where("orders.date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("orders.date < ?", *f.To)
	}
	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}
	return q
}

func (s *MySQLOrderStore) Points(ctx context.Context, f domrepo.OrderFilter) ([]models.OrderPoint, error) {
	var points []models.OrderPoint
	err := s.scoped(ctx, f).
		Select("orders.id AS order_id, orders.client_id, orders.date, orders.total_amount AS amount").
		Order("orders.date ASC, orders.id ASC").
		Scan(&points).Error
	if err != nil {
		return nil, fmt.Errorf("order points: %w", err)
	}
	return points, nil
}

func (s *MySQLOrderStore) LineItems(ctx context.Context, f domrepo.OrderFilter) ([]models.LineItemPoint, error) {
	var items []models.LineItemPoint
	err := s.scoped(ctx, f).
		Select(`order_items.product_id, products.name AS product_name,
			products.catalog_price, order_items.quantity, order_items.unit_price`).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Order("orders.date ASC, order_items.id ASC").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("order line items: %w", err)
	}
	return items, nil
}

func (s *MySQLOrderStore) CountByClient(ctx context.Context, clientID uint, from, to time.Time) (int64, error) {
	var n int64
	err := s.scoped(ctx, domrepo.OrderFilter{ClientID: &clientID, From: &from, To: &to}).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}
