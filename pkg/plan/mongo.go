package plan

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Default collection names used by MongoResolver.
const (
	DefaultSubscriptionsCollection = "subscriptions"
	DefaultPackagesCollection      = "packages"
)

// SubscriptionStatusActive is the status that grants plan access.
const SubscriptionStatusActive = "active"

// MongoResolver resolves the active package for a business from a
// MongoDB-backed subscription store: the newest active subscription
// names a package document, which is normalized into a Package.
//
// Businesses without an active subscription resolve to the default
// free plan. A subscription pointing at a missing package also falls
// back to the free plan rather than failing the request; that state
// occurs mid-migration when packages are retired.
type MongoResolver struct {
	subscriptions *mongo.Collection
	packages      *mongo.Collection
}

// MongoResolverOption customizes a MongoResolver.
type MongoResolverOption func(*mongoResolverConfig)

type mongoResolverConfig struct {
	subscriptionsCollection string
	packagesCollection      string
}

// WithSubscriptionsCollection overrides the subscriptions collection name.
func WithSubscriptionsCollection(name string) MongoResolverOption {
	return func(c *mongoResolverConfig) {
		if name != "" {
			c.subscriptionsCollection = name
		}
	}
}

// WithPackagesCollection overrides the packages collection name.
func WithPackagesCollection(name string) MongoResolverOption {
	return func(c *mongoResolverConfig) {
		if name != "" {
			c.packagesCollection = name
		}
	}
}

// NewMongoResolver returns a MongoResolver reading from db.
func NewMongoResolver(db *mongo.Database, opts ...MongoResolverOption) *MongoResolver {
	cfg := mongoResolverConfig{
		subscriptionsCollection: DefaultSubscriptionsCollection,
		packagesCollection:      DefaultPackagesCollection,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &MongoResolver{
		subscriptions: db.Collection(cfg.subscriptionsCollection),
		packages:      db.Collection(cfg.packagesCollection),
	}
}

// ActivePackage implements Resolver.
func (r *MongoResolver) ActivePackage(ctx context.Context, businessID string) (Package, error) {
	// package_id is stored as an ObjectID in current documents and as a
	// plain string in pre-migration ones; decoding into any keeps the
	// follow-up _id filter shape-agnostic.
	var sub struct {
		PackageID any `bson:"package_id"`
	}
	err := r.subscriptions.FindOne(ctx,
		bson.M{"business_id": businessID, "status": SubscriptionStatusActive},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return DefaultFreePlan(), nil
	}
	if err != nil {
		return Package{}, errors.Join(ErrFailedToResolvePlan, err)
	}

	var doc bson.M
	err = r.packages.FindOne(ctx, bson.M{"_id": sub.PackageID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return DefaultFreePlan(), nil
	}
	if err != nil {
		return Package{}, errors.Join(ErrFailedToDecodePlan, err)
	}

	return Normalize(fromBSON(doc)), nil
}

// fromBSON flattens bson document types into the plain map shape
// Normalize expects. Nested documents decode as bson.D or bson.M
// depending on the registry, so both are handled.
func fromBSON(doc bson.M) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch nested := v.(type) {
		case bson.M:
			out[k] = fromBSON(nested)
		case bson.D:
			m := make(bson.M, len(nested))
			for _, e := range nested {
				m[e.Key] = e.Value
			}
			out[k] = fromBSON(m)
		default:
			out[k] = v
		}
	}
	return out
}
