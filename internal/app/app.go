// Package app assembles the calculation services from configuration. The API,
// the MQTT worker and the Lambda handler all start from Build.
package app

import (
	"context"
	"fmt"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/cache"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/cloud"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/config"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/database"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/logging"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/repository"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/service"
)

// Build connects whatever infrastructure is configured and returns the
// services with a cleanup that releases it. config.Load must have run.
func Build(ctx context.Context) (*service.Services, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	logger := logging.Component("app")
	opts := service.Options{
		Limits: service.Limits{
			BranchDropPercent: config.BranchDropPercent(),
			TotalDropPercent:  config.TotalDropPercent(),
		},
		Logger: logging.Component("service"),
	}

	if config.UseCloudServices() {
		cfg, err := cloud.LoadConfig(ctx, config.AWSRegion())
		if err != nil {
			return nil, cleanup, fmt.Errorf("aws config: %w", err)
		}
		if table := config.DynamoDBTable(); table != "" {
			opts.History = cloud.NewDynamoDBClient(cfg, table)
			logger.Info().Str("table", table).Msg("history in dynamodb")
		}
		if bucket := config.S3Bucket(); bucket != "" {
			opts.Reports = cloud.NewS3Client(cfg, bucket)
		}
		if arn := config.SNSTopicArn(); arn != "" {
			opts.Alerts = cloud.NewSNSClient(cfg, arn)
		}
	}

	if opts.History == nil && config.DBDSN() != "" {
		db, err := database.Connect(config.DBDriver(), config.DBDSN())
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		closers = append(closers, func() { db.Close() })
		if err := database.Migrate(ctx, db); err != nil {
			cleanup()
			return nil, func() {}, err
		}
		opts.History = repository.New(db)
		logger.Info().Str("driver", config.DBDriver()).Int("schema", database.SchemaVersion()).Msg("history in database")
	}

	if addr := config.RedisAddr(); addr != "" {
		client, err := cache.NewRedisClient(addr, config.RedisPassword())
		if err != nil {
			// The engine is correct without a cache, so start anyway.
			logger.Warn().Err(err).Str("addr", addr).Msg("redis unavailable, caching disabled")
		} else {
			closers = append(closers, func() { client.Close() })
			opts.Cache = cache.NewStore(client, config.CacheTTL())
		}
	}

	if opts.History == nil {
		logger.Info().Msg("calculation history disabled")
	}
	return service.New(opts), cleanup, nil
}
