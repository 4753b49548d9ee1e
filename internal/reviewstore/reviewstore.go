// Package reviewstore persists product reviews behind one read/write
// contract with two backends: the relational reviews table and a DynamoDB
// table keyed for newest-first reads. Listing order is identical across
// backends even though their native ordering mechanics differ.
package reviewstore

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/duallane/go-shop-api/internal/config"
	"github.com/duallane/go-shop-api/internal/database"
	"github.com/duallane/go-shop-api/internal/model"
)

// Input carries a validated review to write. The creation timestamp is
// assigned by the store, never by the caller.
type Input struct {
	ProductID int64
	UserID    int64
	UserName  string
	Rating    int
	Content   string
	ImageURLs []string
}

type Store interface {
	// ListByProduct returns the product's reviews newest-first.
	ListByProduct(ctx context.Context, productID int64) ([]model.Review, error)
	Create(ctx context.Context, in Input) (*model.Review, error)
}

// New selects the configured backend. The local backend reuses the process's
// relational store; the DynamoDB backend builds its own client.
func New(ctx context.Context, cfg config.ReviewConfig, db database.Store, log *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case config.ReviewBackendLocal:
		return newLocalStore(db), nil
	case config.ReviewBackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		log.Info("dynamodb review store ready", "table", cfg.Table, "region", cfg.Region)
		return newDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.Table), nil
	default:
		return nil, fmt.Errorf("unsupported REVIEW_BACKEND %q", cfg.Backend)
	}
}
