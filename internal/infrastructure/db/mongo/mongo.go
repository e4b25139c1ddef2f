// Package mongo holds the order, warehouse and user repositories backing the
// shipment pipeline, plus the shared connection bootstrap.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	defaultTimeout = 10 * time.Second
	appName        = "merchant-ops"
)

// Config carries the connection settings for the order store.
type Config struct {
	URI      string
	Database string
	// Timeout bounds connect plus the verification ping; connectTimeout
	// applies when zero.
	Timeout time.Duration
}

// Connect dials MongoDB, verifies the primary is reachable, and returns the
// client together with the selected database handle. The repositories all
// share the one client.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("ping mongodb primary: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
