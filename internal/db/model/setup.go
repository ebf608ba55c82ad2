package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/config"
)

const setupTimeout = 30 * time.Second

var collections = []string{
	EngineStateCollection,
}

// Setup creates the collections the engine writes to. Mongo creates
// collections lazily on first write, so this exists mainly to fail fast on
// bad credentials before the event loop starts.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()
	defer func() {
		// best effort, setup connection is short-lived
		_ = client.Disconnect(ctx)
	}()

	database := client.Database(cfg.DbName)
	existing, err := database.ListCollectionNames(ctx, map[string]any{})
	if err != nil {
		return err
	}
	existingSet := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		existingSet[name] = struct{}{}
	}

	for _, name := range collections {
		if _, ok := existingSet[name]; ok {
			continue
		}
		if err := database.CreateCollection(ctx, name); err != nil {
			return err
		}
	}

	return nil
}
