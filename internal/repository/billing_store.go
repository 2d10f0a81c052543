package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"BizPulse/internal/domain/models"
	pkgmysql "BizPulse/pkg/mysql"
)

// MySQLBillingStore implements BillingStore backed by GORM/MySQL.
type MySQLBillingStore struct {
	db *gorm.DB
}

func NewMySQLBillingStore(c *pkgmysql.Client) *MySQLBillingStore {
	return &MySQLBillingStore{db: c.DB()}
}

// OverdueInvoices returns sent invoices past their due date, oldest first,
// plus the total count beyond the limit.
func (s *MySQLBillingStore) OverdueInvoices(ctx context.Context, asOf time.Time, limit int) ([]models.Invoice, int64, error) {
	q := s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("status = ? AND due_date < ?", models.InvoiceStatusSent, asOf)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count overdue invoices: %w", err)
	}

	var invoices []models.Invoice
	q = q.Order("due_date ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&invoices).Error; err != nil {
		return nil, 0, fmt.Errorf("list overdue invoices: %w", err)
	}
	return invoices, total, nil
}

// MySQLDeliveryStore implements DeliveryStore backed by GORM/MySQL.
type MySQLDeliveryStore struct {
	db *gorm.DB
}

func NewMySQLDeliveryStore(c *pkgmysql.Client) *MySQLDeliveryStore {
	return &MySQLDeliveryStore{db: c.DB()}
}

func (s *MySQLDeliveryStore) FailedSince(ctx context.Context, since time.Time) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	err := s.db.WithContext(ctx).
		Where("status = ? AND attempted_at >= ?", models.DeliveryStatusFailed, since).
		Order("attempted_at ASC, id ASC").
		Find(&deliveries).Error
	if err != nil {
		return nil, fmt.Errorf("list failed deliveries: %w", err)
	}
	return deliveries, nil
}

// MySQLFeedbackStore implements FeedbackStore backed by GORM/MySQL.
type MySQLFeedbackStore struct {
	db *gorm.DB
}

func NewMySQLFeedbackStore(c *pkgmysql.Client) *MySQLFeedbackStore {
	return &MySQLFeedbackStore{db: c.DB()}
}

func (s *MySQLFeedbackStore) UpdateSentiment(ctx context.Context, feedbackID uint, label string, score float64) error {
	res := s.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("id = ?", feedbackID).
		Updates(map[string]interface{}{"sentiment": label, "sentiment_score": score})
	if res.Error != nil {
		return fmt.Errorf("update feedback sentiment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
