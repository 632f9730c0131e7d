package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type (
	Exchange struct {
		ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
		UserID    int64     `gorm:"not null;index" json:"user_id"`
		ChatID    int64     `gorm:"not null" json:"chat_id"`
		Tier      string    `gorm:"size:64;not null" json:"tier"`
		Model     string    `gorm:"size:255;not null" json:"model"`
		Question  string    `gorm:"type:text;not null" json:"question"`
		Answer    string    `gorm:"type:text;not null" json:"answer"`
		CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	}

	PremiumGrant struct {
		ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
		UserID    int64           `gorm:"not null;index" json:"user_id"`
		Package   string          `gorm:"size:64;not null" json:"package"`
		Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
		Currency  string          `gorm:"size:8;not null" json:"currency"`
		Features  pq.StringArray  `gorm:"type:text[];not null;default:ARRAY[]::text[]" json:"features"`
		GrantedBy int64           `gorm:"not null" json:"granted_by"`
		GrantedAt time.Time       `gorm:"not null" json:"granted_at"`
		ExpiresAt *time.Time      `json:"expires_at"`
	}

	Sanction struct {
		ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
		UserID    int64     `gorm:"not null;index" json:"user_id"`
		Action    string    `gorm:"size:16;not null" json:"action"`
		Reason    string    `gorm:"type:text" json:"reason"`
		IssuedBy  int64     `gorm:"not null" json:"issued_by"`
		CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	}
)

func (Exchange) TableName() string {
	return "relay_exchanges"
}

func (PremiumGrant) TableName() string {
	return "relay_premium_grants"
}

func (Sanction) TableName() string {
	return "relay_sanctions"
}

// All lists every journaled entity, in migration order.
func All() []any {
	return []any{&Exchange{}, &PremiumGrant{}, &Sanction{}}
}
