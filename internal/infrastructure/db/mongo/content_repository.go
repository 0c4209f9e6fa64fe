package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/warisan/heritage-api/internal/core/domain"
	"github.com/warisan/heritage-api/internal/core/ports"
)

const collectionContents = "contents"

type ContentRepository struct {
	col *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{col: db.Collection(collectionContents)}
}

type mongoContent struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Kind            string             `bson:"kind"`
	Title           string             `bson:"title"`
	Body            string             `bson:"body"`
	CategoryID      string             `bson:"category_id,omitempty"`
	Region          string             `bson:"region,omitempty"`
	OwnerID         string             `bson:"owner_id,omitempty"`
	Status          string             `bson:"status"`
	RejectionReason string             `bson:"rejection_reason,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
	ReviewedAt      *time.Time         `bson:"reviewed_at,omitempty"`
}

func (mc *mongoContent) toDomain() *domain.Content {
	return &domain.Content{
		ID:              mc.ID.Hex(),
		Kind:            domain.ContentKind(mc.Kind),
		Title:           mc.Title,
		Body:            mc.Body,
		CategoryID:      mc.CategoryID,
		Region:          mc.Region,
		OwnerID:         mc.OwnerID,
		Status:          domain.ContentStatus(mc.Status),
		RejectionReason: mc.RejectionReason,
		CreatedAt:       mc.CreatedAt,
		UpdatedAt:       mc.UpdatedAt,
		ReviewedAt:      mc.ReviewedAt,
	}
}

func fromDomainContent(c *domain.Content) mongoContent {
	return mongoContent{
		Kind:            string(c.Kind),
		Title:           c.Title,
		Body:            c.Body,
		CategoryID:      c.CategoryID,
		Region:          c.Region,
		OwnerID:         c.OwnerID,
		Status:          string(c.Status),
		RejectionReason: c.RejectionReason,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		ReviewedAt:      c.ReviewedAt,
	}
}

func (r *ContentRepository) Create(ctx context.Context, c *domain.Content) (*domain.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, fromDomainContent(c))
	if err != nil {
		return nil, fmt.Errorf("insert content: %w", err)
	}

	created := *c
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ContentRepository) FindByID(ctx context.Context, id string) (*domain.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrContentNotFound
	}

	var mc mongoContent
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("find content: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ContentRepository) List(ctx context.Context, filter ports.ListContentsFilter) ([]*domain.Content, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	if filter.Kind != "" {
		q["kind"] = filter.Kind
	}
	if filter.OwnerID != "" {
		q["owner_id"] = filter.OwnerID
	}
	if filter.CategoryID != "" {
		q["category_id"] = filter.CategoryID
	}

	total, err := r.col.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("count contents: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list contents: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Content
	for cur.Next(ctx) {
		var mc mongoContent
		if err := cur.Decode(&mc); err != nil {
			return nil, 0, fmt.Errorf("decode content: %w", err)
		}
		items = append(items, mc.toDomain())
	}
	return items, total, cur.Err()
}

// Update persists the editorial fields only. Owner and status are never part
// of this write.
func (r *ContentRepository) Update(ctx context.Context, c *domain.Content) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return domain.ErrContentNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":       c.Title,
		"body":        c.Body,
		"category_id": c.CategoryID,
		"region":      c.Region,
		"updated_at":  c.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

// UpdateStatus applies a lifecycle change as a compare-and-swap: the filter
// matches on both id and the expected current status, so a concurrent
// transition makes this write a no-op and surfaces ErrStaleStatus instead of
// silently double-moderating.
func (r *ContentRepository) UpdateStatus(ctx context.Context, id string, from domain.ContentStatus, change domain.StatusChange) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrContentNotFound
	}

	set := bson.M{
		"status":     string(change.To),
		"updated_at": time.Now().UTC(),
	}
	unset := bson.M{}
	if change.RejectionReason != "" {
		set["rejection_reason"] = change.RejectionReason
	} else {
		unset["rejection_reason"] = ""
	}
	if change.ReviewedAt != nil {
		set["reviewed_at"] = *change.ReviewedAt
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid, "status": string(from)}, update)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrStaleStatus
	}
	return nil
}

func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrContentNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes used by list filters and owner lookups.
func (r *ContentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "kind", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
