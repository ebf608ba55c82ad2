package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/db/model"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
)

func (db *Database) SaveRecentLedgers(ctx context.Context, ledgers []types.Ledger) error {
	doc := model.RecentLedgersDocument{
		ID:      model.RecentLedgersID,
		Ledgers: ledgers,
		SavedAt: time.Now().Unix(),
	}

	filter := bson.M{"_id": model.RecentLedgersID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	_, err := db.collection(model.EngineStateCollection).UpdateOne(ctx, filter, update, opts)
	return err
}

func (db *Database) GetRecentLedgers(ctx context.Context) ([]types.Ledger, int64, error) {
	filter := bson.M{"_id": model.RecentLedgersID}
	res := db.collection(model.EngineStateCollection).FindOne(ctx, filter)

	var doc model.RecentLedgersDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, 0, &NotFoundError{
				Key:     model.RecentLedgersID,
				Message: "no persisted ledgers found",
			}
		}
		return nil, 0, err
	}

	return doc.Ledgers, doc.SavedAt, nil
}

func (db *Database) SaveDailyRollups(ctx context.Context, rollups map[string]*types.DayRollup) error {
	days := make(map[string]model.RollupRecord, len(rollups))
	for date, rollup := range rollups {
		days[date] = model.FromDayRollup(rollup)
	}

	doc := model.DailyRollupsDocument{
		ID:      model.DailyRollupsID,
		Days:    days,
		SavedAt: time.Now().Unix(),
	}

	filter := bson.M{"_id": model.DailyRollupsID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	_, err := db.collection(model.EngineStateCollection).UpdateOne(ctx, filter, update, opts)
	return err
}

func (db *Database) GetDailyRollups(ctx context.Context) (map[string]*types.DayRollup, error) {
	filter := bson.M{"_id": model.DailyRollupsID}
	res := db.collection(model.EngineStateCollection).FindOne(ctx, filter)

	var doc model.DailyRollupsDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     model.DailyRollupsID,
				Message: "no persisted rollups found",
			}
		}
		return nil, err
	}

	rollups := make(map[string]*types.DayRollup, len(doc.Days))
	for date, rec := range doc.Days {
		rollups[date] = rec.ToDayRollup(date)
	}
	return rollups, nil
}
