package pipeline

import (
	"context"
	"encoding/json"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/dataset"
)

// Load reads the records named by opts without caching.
// MongoDB reads are retried on network errors and timeouts.
func Load(ctx context.Context, opts Options) ([]dataset.Record, error) {
	switch {
	case len(opts.Records) > 0:
		return opts.Records, nil
	case opts.Input != "":
		return dataset.Load(opts.Input, dataset.LoadOptions{Format: opts.InputFormat, Sheet: opts.Sheet})
	case opts.Mongo != nil:
		var records []dataset.Record
		err := cache.RetryWithBackoff(ctx, func() error {
			var err error
			records, err = dataset.ReadMongo(ctx, *opts.Mongo)
			return retryableMongo(err)
		})
		return records, err
	}
	return nil, nil
}

// retryableMongo marks transient driver failures for retry.
func retryableMongo(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return cache.Retryable(err)
	}
	return err
}

// marshalRecords encodes records for hashing and caching.
func marshalRecords(records []dataset.Record) ([]byte, error) {
	return json.Marshal(records)
}

func unmarshalRecords(data []byte) ([]dataset.Record, error) {
	var records []dataset.Record
	err := json.Unmarshal(data, &records)
	return records, err
}
