package models

import (
	"time"

	"gorm.io/gorm"
)

// Client lifecycle states.
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusProspect = "prospect"
)

// Client is the subject of scoring and aggregation. Histories are read-only
// to the pipeline; CRUD lives elsewhere.
type Client struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	Name               string         `json:"name" gorm:"not null"`
	Email              string         `json:"email" gorm:"index"`
	Status             string         `json:"status" gorm:"default:'active';index"`
	MonthlyConsumption float64        `json:"monthly_consumption"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `json:"-" gorm:"index"`

	Orders   []Order    `json:"-" gorm:"foreignKey:ClientID"`
	Visits   []Visit    `json:"-" gorm:"foreignKey:ClientID"`
	Feedback []Feedback `json:"-" gorm:"foreignKey:ClientID"`
}

// Product carries the catalog price used for margin derivation.
type Product struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Category     string         `json:"category"`
	CatalogPrice float64        `json:"catalog_price"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is a dated transaction belonging to a client.
type Order struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	ClientID    uint        `json:"client_id" gorm:"not null;index"`
	Date        time.Time   `json:"date" gorm:"index"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status" gorm:"default:'pending';index"`
	CreatedAt   time.Time   `json:"created_at"`
	Items       []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is a product line within an order.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"not null;index"`
	ProductID uint    `json:"product_id" gorm:"not null;index"`
	Quantity  int     `json:"quantity" gorm:"default:1"`
	UnitPrice float64 `json:"unit_price"`
}

// Visit is a recorded interaction with a client.
type Visit struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	ClientID uint      `json:"client_id" gorm:"not null;index"`
	Type     string    `json:"type"` // call, meeting, demo, support
	Date     time.Time `json:"date" gorm:"index"`
	Outcome  string    `json:"outcome"`
}

// Feedback is a client rating with optional sentiment attached after scoring.
type Feedback struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ClientID       uint      `json:"client_id" gorm:"not null;index"`
	Rating         int       `json:"rating"` // 1-5
	Comment        string    `json:"comment"`
	Sentiment      string    `json:"sentiment"`
	SentimentScore float64   `json:"sentiment_score"`
	CreatedAt      time.Time `json:"created_at"`
}

// Invoice statuses.
const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusSent  = "sent"
	InvoiceStatusPaid  = "paid"
	InvoiceStatusVoid  = "void"
)

// Invoice is a billing record; "sent" past its due date means overdue.
type Invoice struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ClientID  uint      `json:"client_id" gorm:"not null;index"`
	Amount    float64   `json:"amount"`
	DueDate   time.Time `json:"due_date" gorm:"index"`
	Status    string    `json:"status" gorm:"default:'draft';index"`
	CreatedAt time.Time `json:"created_at"`
}

// Delivery statuses.
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// Delivery is a fulfillment attempt for an order.
type Delivery struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OrderID     uint      `json:"order_id" gorm:"not null;index"`
	Status      string    `json:"status" gorm:"default:'pending';index"`
	AttemptedAt time.Time `json:"attempted_at" gorm:"index"`
	Notes       string    `json:"notes"`
}
