package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"golang.org/x/sync/singleflight"
)

const connectTimeout = 10 * time.Second

// Connector hands out the shared document-store handle. The first Acquire
// dials; concurrent callers wait on that single dial, which is bounded by the
// dialing caller's context and connectTimeout. A failed dial is not cached,
// so the next Acquire tries again.
type Connector struct {
	uri      string
	database string
	logger   *Logger

	group  singleflight.Group
	mu     sync.RWMutex
	client *mongo.Client
}

// NewConnector creates a connector for the given URI and database name
func NewConnector(uri, database string, logger *Logger) *Connector {
	return &Connector{
		uri:      uri,
		database: database,
		logger:   logger.ForFeature("mongo"),
	}
}

func (c *Connector) cached() *mongo.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

// Acquire returns the database handle, connecting on first use
func (c *Connector) Acquire(ctx context.Context) (*mongo.Database, error) {
	if client := c.cached(); client != nil {
		return client.Database(c.database), nil
	}

	v, err, _ := c.group.Do("connect", func() (interface{}, error) {
		if client := c.cached(); client != nil {
			return client, nil
		}

		client, err := mongo.Connect(options.Client().ApplyURI(c.uri))
		if err != nil {
			return nil, err
		}

		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}

		c.mu.Lock()
		c.client = client
		c.mu.Unlock()

		c.logger.Info("Connected to document store", "database", c.database)
		return client, nil
	})
	if err != nil {
		c.logger.Error("Failed to connect to document store", "error", err)
		return nil, fmt.Errorf("connect to document store: %w", err)
	}

	return v.(*mongo.Client).Database(c.database), nil
}

// Ping checks the connection, dialing if needed
func (c *Connector) Ping(ctx context.Context) error {
	db, err := c.Acquire(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, readpref.Primary())
}

// Close disconnects the cached client, if any
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.client = nil
	c.mu.Unlock()

	if client == nil {
		return nil
	}

	c.logger.Info("Closing document store connection")
	return client.Disconnect(ctx)
}
