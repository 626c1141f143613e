package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/shashiranjanraj/eduportal/app/models"
)

func TestMongoUsers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns an id", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &models.User{Username: "alice", Role: models.RoleStudent}
		require.NoError(mt, store.Users.Create(ctx, user))
		assert.False(mt, user.ID.IsZero())
	})

	mt.Run("create maps duplicate key", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: mern_auth.users index: username_unique",
		}))

		err := store.Users.Create(ctx, &models.User{Username: "alice"})
		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("find by username", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "mern_auth.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "fullname", Value: "Alice A"},
			{Key: "username", Value: "alice"},
			{Key: "passwordHash", Value: "$2a$10$hash"},
			{Key: "role", Value: "student"},
			{Key: "approved", Value: true},
		}))

		user, err := store.Users.FindByUsername(ctx, "alice")
		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, "$2a$10$hash", user.PasswordHash)
		assert.True(mt, user.Approved)
		assert.Nil(mt, user.PaymentStatus)
	})

	mt.Run("find by username not found", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "mern_auth.users", mtest.FirstBatch))

		_, err := store.Users.FindByUsername(ctx, "ghost")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("find by invalid id skips the query", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)

		_, err := store.Users.FindByID(ctx, "nope")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("pending students", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "mern_auth.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "username", Value: "alice"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "username", Value: "carol"}},
		))

		pending, err := store.Users.PendingStudents(ctx)
		require.NoError(mt, err)
		require.Len(mt, pending, 2)
		assert.Equal(mt, "carol", pending[1].Username)
	})

	mt.Run("approve student", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "username", Value: "alice"},
				{Key: "role", Value: "student"},
				{Key: "approved", Value: true},
			}},
		})

		user, err := store.Users.ApproveStudent(ctx, "alice")
		require.NoError(mt, err)
		assert.True(mt, user.Approved)
		assert.Equal(mt, "student", user.Role)
	})

	mt.Run("approve unknown student", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := store.Users.ApproveStudent(ctx, "ghost")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("mark payment status", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})

		assert.NoError(mt, store.Users.MarkPaymentStatus(ctx, primitive.NewObjectID().Hex()))
	})

	mt.Run("mark payment status unknown id", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})

		err := store.Users.MarkPaymentStatus(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("find by usernames with no names skips the query", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)

		users, err := store.Users.FindByUsernames(ctx, nil)
		require.NoError(mt, err)
		assert.NotNil(mt, users)
		assert.Empty(mt, users)
	})
}

func TestMongoCourses(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("all", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "mern_auth.courses", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "courseName", Value: "Go 101"}, {Key: "courseFee", Value: "100"}},
		))

		courses, err := store.Courses.All(ctx)
		require.NoError(mt, err)
		require.Len(mt, courses, 1)
		assert.Equal(mt, "Go 101", courses[0].CourseName)
		assert.Equal(mt, "100", courses[0].CourseFee)
	})

	mt.Run("all empty encodes as empty slice", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "mern_auth.courses", mtest.FirstBatch))

		courses, err := store.Courses.All(ctx)
		require.NoError(mt, err)
		assert.NotNil(mt, courses)
		assert.Empty(mt, courses)
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "mern_auth.courses", mtest.FirstBatch))

		_, err := store.Courses.FindByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestMongoOrders(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		order := &models.Order{Username: "alice", CourseName: "Go 101", CourseFee: 99.5}
		require.NoError(mt, store.Orders.Create(ctx, order))
		assert.False(mt, order.ID.IsZero())
	})

	mt.Run("list by payment status decodes fee", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "mern_auth.orders", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "username", Value: "alice"},
				{Key: "courseFee", Value: 99.5},
				{Key: "paymentStatus", Value: true},
			},
		))

		orders, err := store.Orders.ListByPaymentStatus(ctx, true)
		require.NoError(mt, err)
		require.Len(mt, orders, 1)
		assert.Equal(mt, models.Amount(99.5), orders[0].CourseFee)
		assert.True(mt, orders[0].PaymentStatus)
	})

	mt.Run("mark paid unknown id", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})

		err := store.Orders.MarkPaid(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("mark paid invalid id", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB, time.Second)

		assert.ErrorIs(mt, store.Orders.MarkPaid(ctx, "123"), ErrNotFound)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates both indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		assert.NoError(mt, EnsureIndexes(context.Background(), mt.DB))
	})
}
