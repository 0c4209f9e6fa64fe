package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/warisan/heritage-api/internal/core/domain"
)

const collectionModerationEvents = "moderation_events"

// AuditRepository persists the append-only moderation audit trail.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionModerationEvents)}
}

func (r *AuditRepository) InsertModerationEvent(ctx context.Context, event *domain.ModerationEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert moderation event: %w", err)
	}
	return nil
}
