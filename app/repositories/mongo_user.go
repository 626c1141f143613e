package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/eduportal/app/models"
)

type mongoUsers struct {
	coll coll
}

func (r *mongoUsers) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	return r.coll.insert(ctx, user)
}

func (r *mongoUsers) FindByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	filter, err := byHexID(id)
	if err != nil {
		return user, err
	}
	err = r.coll.findOne(ctx, filter, &user)
	return user, err
}

func (r *mongoUsers) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.coll.findOne(ctx, bson.M{"username": username}, &user)
	return user, err
}

func (r *mongoUsers) FindByUsernames(ctx context.Context, usernames []string) ([]models.User, error) {
	users := []models.User{}
	if len(usernames) == 0 {
		return users, nil
	}
	err := r.coll.find(ctx, bson.M{"username": bson.M{"$in": usernames}}, &users)
	return users, err
}

func (r *mongoUsers) PendingStudents(ctx context.Context) ([]models.PendingStudent, error) {
	students := []models.PendingStudent{}
	err := r.coll.find(ctx,
		bson.M{"role": models.RoleStudent, "approved": false},
		&students,
		options.Find().SetProjection(bson.M{"_id": 1, "username": 1}),
	)
	return students, err
}

func (r *mongoUsers) ApprovedStudents(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := r.coll.find(ctx, bson.M{"role": models.RoleStudent, "approved": true}, &users)
	return users, err
}

func (r *mongoUsers) FindApprovedStudent(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.coll.findOne(ctx, bson.M{"username": username, "role": models.RoleStudent, "approved": true}, &user)
	return user, err
}

func (r *mongoUsers) ApproveStudent(ctx context.Context, username string) (models.User, error) {
	ctx, done := r.coll.op(ctx, "find_one_and_update")
	defer done()

	var user models.User
	err := r.coll.c.FindOneAndUpdate(ctx,
		bson.M{"username": username, "role": models.RoleStudent},
		bson.M{"$set": bson.M{"approved": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, ErrNotFound
	}
	if err != nil {
		return user, fmt.Errorf("users approve: %w", err)
	}
	return user, nil
}

func (r *mongoUsers) MarkPaymentStatus(ctx context.Context, id string) error {
	return r.coll.setByID(ctx, id, bson.M{"paymentStatus": true})
}
