package main

import (
	"context"
	"time"

	"courtbook/internal/seed"
	"courtbook/pkg/config"
)

const JobName = "catalog-seed"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	result, err := seed.Run(ctx, db, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Seed failed", "error", err)
	}

	for i, id := range result.CourtIDs {
		cfg.Log.Info("Court", "name", seed.Courts[i].Name, "id", id)
	}
	for i, id := range result.CoachIDs {
		cfg.Log.Info("Coach", "name", seed.Coaches[i].Name, "id", id)
	}
}
