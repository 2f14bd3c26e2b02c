package mongoledger

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/storelane/plankit/pkg/quota"
)

// DefaultCollection is the usage ledger collection name.
const DefaultCollection = "business_usage"

// Ledger implements quota.Ledger on a MongoDB collection, one document
// per (business_id, period, period_key) with a counters subdocument.
// Atomicity of the conditional increment comes from findOneAndUpdate
// evaluating its filter and applying $inc as a single operation.
type Ledger struct {
	col *mongo.Collection
}

// Option customizes a Ledger.
type Option func(*config)

type config struct {
	collection string
}

// WithCollection overrides the collection name.
func WithCollection(name string) Option {
	return func(c *config) {
		if name != "" {
			c.collection = name
		}
	}
}

// New returns a Ledger backed by a collection in db.
func New(db *mongo.Database, opts ...Option) *Ledger {
	cfg := config{collection: DefaultCollection}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Ledger{col: db.Collection(cfg.collection)}
}

// EnsureIndexes creates the unique index that makes one usage record
// per (business, period, period_key) a storage-level invariant. Call
// once at startup.
func (l *Ledger) EnsureIndexes(ctx context.Context) error {
	_, err := l.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "business_id", Value: 1},
			{Key: "period", Value: 1},
			{Key: "period_key", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_business_period"),
	})
	return err
}

func selector(key quota.RecordKey) bson.M {
	return bson.M{
		"business_id": key.BusinessID,
		"period":      string(key.Period),
		"period_key":  key.PeriodKey,
	}
}

// Ensure implements quota.Ledger. The upsert only writes identity
// fields and timestamps; setting counters here would conflict with a
// concurrent $inc on a counters subfield.
func (l *Ledger) Ensure(ctx context.Context, key quota.RecordKey, now time.Time) error {
	_, err := l.col.UpdateOne(ctx,
		selector(key),
		bson.M{
			"$setOnInsert": bson.M{
				"business_id": key.BusinessID,
				"period":      string(key.Period),
				"period_key":  key.PeriodKey,
				"created_at":  now,
			},
			"$set": bson.M{"updated_at": now},
		},
		options.UpdateOne().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		// Another request inserted the record first.
		return nil
	}
	return err
}

// IncrementUnchecked implements quota.Ledger.
func (l *Ledger) IncrementUnchecked(ctx context.Context, key quota.RecordKey, counter string, qty int64, now time.Time) error {
	_, err := l.col.UpdateOne(ctx,
		selector(key),
		bson.M{
			"$inc": bson.M{"counters." + counter: qty},
			"$set": bson.M{"updated_at": now},
		},
	)
	return err
}

// IncrementIfBelow implements quota.Ledger. The filter admits the
// increment only when the counter is absent or still has room; no
// upsert, so a denial cannot create a record.
func (l *Ledger) IncrementIfBelow(ctx context.Context, key quota.RecordKey, counter string, qty, limit int64, now time.Time) (bool, error) {
	field := "counters." + counter
	filter := selector(key)
	filter["$or"] = bson.A{
		bson.M{field: bson.M{"$exists": false}},
		bson.M{field: bson.M{"$lte": limit - qty}},
	}

	err := l.col.FindOneAndUpdate(ctx,
		filter,
		bson.M{
			"$inc": bson.M{field: qty},
			"$set": bson.M{"updated_at": now},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Err()

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return false, nil
	case mongo.IsDuplicateKeyError(err):
		return false, quota.ErrDuplicateRecord
	default:
		return false, err
	}
}

// Decrement implements quota.Ledger. Plain update without upsert: a
// missing record makes the decrement a no-op.
func (l *Ledger) Decrement(ctx context.Context, key quota.RecordKey, counter string, qty int64, now time.Time) error {
	_, err := l.col.UpdateOne(ctx,
		selector(key),
		bson.M{
			"$inc": bson.M{"counters." + counter: -qty},
			"$set": bson.M{"updated_at": now},
		},
	)
	return err
}

// Current implements quota.Ledger.
func (l *Ledger) Current(ctx context.Context, key quota.RecordKey, counter string) (int64, error) {
	var doc struct {
		Counters map[string]int64 `bson:"counters"`
	}
	err := l.col.FindOne(ctx,
		selector(key),
		options.FindOne().SetProjection(bson.M{"counters." + counter: 1}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Counters[counter], nil
}
