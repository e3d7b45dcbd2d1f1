package planRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Retention is how long archived plans are kept before Mongo's TTL monitor
// removes them.
const Retention = 7 * 24 * time.Hour

var ErrPlanNotFound = errors.New("plan not found")

type PlanRepository interface {
	Save(ctx context.Context, plan *models.EveningPlan) error
	Get(ctx context.Context, id string) (*models.EveningPlan, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.EveningPlan, error)
}

// MongoPlanRepo implements PlanRepository using MongoDB.
type MongoPlanRepo struct {
	coll *mongo.Collection
}

func NewMongoPlanRepo(db *mongo.Database) (*MongoPlanRepo, error) {
	repo := &MongoPlanRepo{coll: db.Collection("plans")}
	if err := repo.EnsureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

// EnsureIndexes creates the id, user and expiry indexes on the plans collection.
func (r *MongoPlanRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(Retention.Seconds())).SetName("created_ttl"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create plan indexes: %w", err)
	}
	return nil
}

// Save upserts the plan by id.
func (r *MongoPlanRepo) Save(ctx context.Context, plan *models.EveningPlan) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": plan.ID}, plan, opts); err != nil {
		return fmt.Errorf("failed to save plan %s: %w", plan.ID, err)
	}
	return nil
}

func (r *MongoPlanRepo) Get(ctx context.Context, id string) (*models.EveningPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var plan models.EveningPlan
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&plan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plan %s: %w", id, err)
	}
	return &plan, nil
}

// ListByUser returns the user's most recent plans, newest first.
func (r *MongoPlanRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.EveningPlan, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans for %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	plans := []models.EveningPlan{}
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, fmt.Errorf("failed to decode plans: %w", err)
	}
	return plans, nil
}
