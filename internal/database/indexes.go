package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsurePrincipalIndexes creates the unique identity indexes for one of the
// principal collections (users, clothpartners, admins). Email is always
// unique; username and phone are optional so their indexes are sparse.
func EnsurePrincipalIndexes(db *mongo.Database, collection string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(collection).Indexes()

	models := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetName("username_unique").
				SetUnique(true).
				SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().
				SetName("phone_unique").
				SetUnique(true).
				SetSparse(true),
		},
	}

	log.Printf("EnsurePrincipalIndexes: creating identity indexes on %s", collection)
	_, err := indexes.CreateMany(ctx, models)
	if err != nil {
		log.Printf("EnsurePrincipalIndexes: %s index error: %v", collection, err)
		return err
	}
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetName("user_index"),
		},
		{
			Keys: bson.D{{Key: "code", Value: 1}},
			Options: options.Index().
				SetName("code_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"code": bson.M{"$exists": true},
				}),
		},
	}

	log.Println("EnsureOrderIndexes: creating user and code indexes")
	_, err := indexes.CreateMany(ctx, models)
	if err != nil {
		log.Println("EnsureOrderIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureSubscriberIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("subscribers").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureSubscriberIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureSubscriberIndexes: email index error:", err)
		return err
	}
	return nil
}
