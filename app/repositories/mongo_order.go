package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/eduportal/app/models"
)

type mongoOrders struct {
	coll coll
}

func (r *mongoOrders) Create(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	return r.coll.insert(ctx, order)
}

func (r *mongoOrders) ListByPaymentStatus(ctx context.Context, paid bool) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.coll.find(ctx, bson.M{"paymentStatus": paid}, &orders)
	return orders, err
}

func (r *mongoOrders) ListPaidByUsername(ctx context.Context, username string) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.coll.find(ctx, bson.M{"username": username, "paymentStatus": true}, &orders)
	return orders, err
}

func (r *mongoOrders) MarkPaid(ctx context.Context, id string) error {
	return r.coll.setByID(ctx, id, bson.M{"paymentStatus": true})
}
