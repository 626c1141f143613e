package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/eduportal/pkg/database"
	"github.com/shashiranjanraj/eduportal/pkg/metrics"
)

// NewMongoStore returns repositories over db's users, courses and orders
// collections.
func NewMongoStore(db *mongo.Database, timeout time.Duration) *Store {
	return &Store{
		Users:   &mongoUsers{coll: newColl(db, database.Users, timeout)},
		Courses: &mongoCourses{coll: newColl(db, database.Courses, timeout)},
		Orders:  &mongoOrders{coll: newColl(db, database.Orders, timeout)},
	}
}

// UsernameIndex is the unique index on users.username.
const UsernameIndex = "username_unique"

// EnsureIndexes creates the unique username index and the order lookup index.
// Re-running with identical specs is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(database.Users).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(UsernameIndex),
	})
	if err != nil {
		return fmt.Errorf("users index %s: %w", UsernameIndex, err)
	}

	_, err = db.Collection(database.Orders).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}, {Key: "paymentStatus", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("orders index: %w", err)
	}
	return nil
}

// coll bundles a collection with the per-operation timeout and metrics label.
type coll struct {
	c       *mongo.Collection
	name    string
	timeout time.Duration
}

func newColl(db *mongo.Database, name string, timeout time.Duration) coll {
	return coll{c: db.Collection(name), name: name, timeout: timeout}
}

// op bounds ctx by the store timeout; the returned func must be deferred.
func (c coll) op(ctx context.Context, operation string) (context.Context, func()) {
	start := time.Now()
	if c.timeout <= 0 {
		return ctx, func() { metrics.ObserveDBQuery(c.name+"."+operation, start) }
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	return ctx, func() {
		cancel()
		metrics.ObserveDBQuery(c.name+"."+operation, start)
	}
}

func (c coll) insert(ctx context.Context, doc interface{}) error {
	ctx, done := c.op(ctx, "insert_one")
	defer done()

	if _, err := c.c.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s insert: %w", c.name, ErrDuplicate)
		}
		return fmt.Errorf("%s insert: %w", c.name, err)
	}
	return nil
}

func (c coll) findOne(ctx context.Context, filter interface{}, dest interface{}) error {
	ctx, done := c.op(ctx, "find_one")
	defer done()

	err := c.c.FindOne(ctx, filter).Decode(dest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s find one: %w", c.name, err)
	}
	return nil
}

// find decodes every match into dest, a pointer to a non-nil slice so an
// empty result encodes as [].
func (c coll) find(ctx context.Context, filter interface{}, dest interface{}, opts ...*options.FindOptions) error {
	ctx, done := c.op(ctx, "find")
	defer done()

	cur, err := c.c.Find(ctx, filter, opts...)
	if err != nil {
		return fmt.Errorf("%s find: %w", c.name, err)
	}
	if err := cur.All(ctx, dest); err != nil {
		return fmt.Errorf("%s decode: %w", c.name, err)
	}
	return nil
}

// setByID applies $set to the document with hex id.
func (c coll) setByID(ctx context.Context, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	ctx, done := c.op(ctx, "update_one")
	defer done()

	res, err := c.c.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%s update: %w", c.name, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func byHexID(id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return bson.M{"_id": oid}, nil
}
