package dataset

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/matzehuels/stackbar/pkg/errors"
)

// MongoSource names a collection to read records from.
type MongoSource struct {
	URI        string
	Database   string
	Collection string
}

// ReadMongo reads every document of the collection, ordered by _id.
// Document fields become record fields unchanged.
func ReadMongo(ctx context.Context, src MongoSource) ([]Record, error) {
	if src.Database == "" || src.Collection == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "mongo source needs a database and a collection")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(src.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	defer func() { _ = client.Disconnect(context.WithoutCancel(ctx)) }()

	coll := client.Database(src.Database).Collection(src.Collection)
	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("query %s.%s: %w", src.Database, src.Collection, err)
	}

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read %s.%s: %w", src.Database, src.Collection, err)
	}

	records := make([]Record, len(docs))
	for i, doc := range docs {
		records[i] = Record(doc)
	}
	return records, nil
}
