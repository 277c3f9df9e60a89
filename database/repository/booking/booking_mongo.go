package bookingRepo

import (
	"context"
	"errors"

	"tabletalk/config"
	"tabletalk/database"
	"tabletalk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoBookingRepo struct {
	restaurants  *mongo.Collection
	reservations *mongo.Collection
}

// NewMongoBookingRepo returns a Repository backed by MongoDB.
func NewMongoBookingRepo() Repository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoBookingRepo{
		restaurants:  db.Collection("restaurants"),
		reservations: db.Collection("reservations"),
	}
}

func (r *mongoBookingRepo) UpsertRestaurant(ctx context.Context, rest models.Restaurant) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.restaurants.ReplaceOne(ctx, bson.M{"name": rest.Name}, rest, opts)
	return err
}

func (r *mongoBookingRepo) GetRestaurant(ctx context.Context, name string) (*models.Restaurant, error) {
	var rest models.Restaurant
	err := r.restaurants.FindOne(ctx, bson.M{"name": name}).Decode(&rest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *mongoBookingRepo) InsertReservation(ctx context.Context, res models.Reservation) error {
	_, err := r.reservations.InsertOne(ctx, res)
	return err
}

func (r *mongoBookingRepo) GetReservation(ctx context.Context, restaurant, reference string) (*models.Reservation, error) {
	var res models.Reservation
	filter := bson.M{"restaurant": restaurant, "bookingReference": reference}
	err := r.reservations.FindOne(ctx, filter).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *mongoBookingRepo) ReplaceReservation(ctx context.Context, res models.Reservation) error {
	filter := bson.M{"restaurant": res.Restaurant, "bookingReference": res.BookingReference}
	result, err := r.reservations.ReplaceOne(ctx, filter, res)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
