package repository

import (
	"context"
	"relaybot/sources/access"
	"relaybot/sources/persistence/entities"
	"relaybot/sources/platform"
	"relaybot/sources/tracing"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Exchange struct {
	UserID   int64
	ChatID   int64
	Tier     string
	Model    string
	Question string
	Answer   string
}

// JournalRepository appends exchanges, grants and sanctions to postgres. Nothing reads
// them back. Without a database every call is a no-op.
type JournalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

func (x *JournalRepository) Enabled() bool {
	return x != nil && x.db != nil
}

func (x *JournalRepository) RecordExchange(logger *tracing.Logger, exchange Exchange) error {
	if !x.Enabled() {
		return nil
	}
	defer tracing.ProfilePoint(logger, "Journal exchange completed", "repository.journal.exchange", tracing.UserId, exchange.UserID)()

	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	entity := &entities.Exchange{
		UserID:   exchange.UserID,
		ChatID:   exchange.ChatID,
		Tier:     exchange.Tier,
		Model:    exchange.Model,
		Question: exchange.Question,
		Answer:   exchange.Answer,
	}

	if err := x.db.WithContext(ctx).Create(entity).Error; err != nil {
		logger.E("Failed to journal exchange", tracing.InnerError, err)
		return err
	}
	return nil
}

func (x *JournalRepository) RecordGrant(logger *tracing.Logger, userID int64, adminID int64, pkg access.Package, currency string, assignment access.Assignment) error {
	if !x.Enabled() {
		return nil
	}
	defer tracing.ProfilePoint(logger, "Journal grant completed", "repository.journal.grant", tracing.UserId, userID, tracing.PackageName, pkg.Name)()

	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	entity := &entities.PremiumGrant{
		UserID:    userID,
		Package:   pkg.Name,
		Price:     decimal.NewFromInt(pkg.Price),
		Currency:  currency,
		Features:  pq.StringArray(pkg.Features),
		GrantedBy: adminID,
		GrantedAt: assignment.GrantedAt,
	}
	if !assignment.ExpiresAt.IsZero() {
		expires := assignment.ExpiresAt
		entity.ExpiresAt = &expires
	}
	if entity.Features == nil {
		entity.Features = pq.StringArray{}
	}

	if err := x.db.WithContext(ctx).Create(entity).Error; err != nil {
		logger.E("Failed to journal premium grant", tracing.InnerError, err)
		return err
	}
	return nil
}

func (x *JournalRepository) RecordSanction(logger *tracing.Logger, userID int64, adminID int64, action string, reason string) error {
	if !x.Enabled() {
		return nil
	}
	defer tracing.ProfilePoint(logger, "Journal sanction completed", "repository.journal.sanction", tracing.UserId, userID, "action", action)()

	ctx, cancel := platform.ContextTimeout(context.Background())
	defer cancel()

	entity := &entities.Sanction{UserID: userID, Action: action, Reason: reason, IssuedBy: adminID}
	if err := x.db.WithContext(ctx).Create(entity).Error; err != nil {
		logger.E("Failed to journal sanction", tracing.InnerError, err)
		return err
	}
	return nil
}
