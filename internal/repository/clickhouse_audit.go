package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"BizPulse/internal/domain/models"
	pkgch "BizPulse/pkg/clickhouse"
	applogger "BizPulse/pkg/logger"
)

// CHAuditSink mirrors prediction batches into append-only ClickHouse tables.
// The mirror is best-effort observability storage: callers log failures and
// move on, the MySQL row remains the source of truth.
type CHAuditSink struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHAuditSink(ch *pkgch.Client) *CHAuditSink {
	return &CHAuditSink{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHAuditSink) SetLogger(l *applogger.Logger) { s.l = l }

// AuditSchema holds the DDL for the audit tables, applied via InitSchema.
var AuditSchema = []string{
	`CREATE TABLE IF NOT EXISTS churn_audit (
		batch_id     String,
		client_id    UInt64,
		score        Float64,
		tier         LowCardinality(String),
		factors      String,
		model_type   LowCardinality(String),
		predicted_at DateTime64(3)
	) ENGINE = MergeTree()
	ORDER BY (batch_id, client_id)`,
	`CREATE TABLE IF NOT EXISTS forecast_audit (
		batch_id   String,
		client_id  UInt64,
		date       DateTime64(3),
		amount     Float64,
		confidence Float64,
		period     LowCardinality(String),
		model_type LowCardinality(String),
		created_at DateTime64(3)
	) ENGINE = MergeTree()
	ORDER BY (batch_id, date)`,
}

func (s *CHAuditSink) RecordChurnBatch(ctx context.Context, batchID string, preds []models.ChurnPrediction) error {
	if len(preds) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("audit begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO churn_audit (batch_id, client_id, score, tier, factors, model_type, predicted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("audit prepare: %w", err)
	}
	defer stmt.Close()

	for _, p := range preds {
		factors, _ := json.Marshal(p.Factors)
		if _, err := stmt.ExecContext(ctx, batchID, uint64(p.ClientID), p.Score, p.Tier,
			string(factors), p.ModelType, p.PredictedAt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("audit churn insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("audit commit: %w", err)
	}
	if s.l != nil {
		s.l.Debug("churn batch mirrored",
			applogger.String("batch_id", batchID),
			applogger.Int("rows", len(preds)),
		)
	}
	return nil
}

func (s *CHAuditSink) RecordForecastBatch(ctx context.Context, batchID string, points []models.ForecastPoint) error {
	if len(points) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("audit begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO forecast_audit (batch_id, client_id, date, amount, confidence, period, model_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("audit prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, p := range points {
		var clientID uint64
		if p.ClientID != nil {
			clientID = uint64(*p.ClientID)
		}
		if _, err := stmt.ExecContext(ctx, batchID, clientID, p.Date, p.Amount,
			p.Confidence, p.Period, p.ModelType, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("audit forecast insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("audit commit: %w", err)
	}
	return nil
}

func (s *CHAuditSink) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHAuditSink) Close() error {
	return nil // pool is owned by pkg/clickhouse.Client
}
