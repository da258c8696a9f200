package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"
)

// ErrNotConfigured is returned when the connector has no URI.
var ErrNotConfigured = errors.New("mongodb uri is not configured")

const defaultDialTimeout = 10 * time.Second

// DatabaseProvider hands out the database handle used by the repositories.
type DatabaseProvider interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

// Connector owns a single lazily-dialed client shared by every repository in the process.
// Concurrent first callers share one dial. A failed dial is not remembered, so the next call tries again.
type Connector struct {
	uri         string
	database    string
	dialTimeout time.Duration
	logger      *slog.Logger

	dial func(ctx context.Context, uri string) (*mongo.Client, error)

	mu     sync.RWMutex
	client *mongo.Client
	group  singleflight.Group
}

// NewConnector returns a Connector for uri and database. Nothing is dialed until first use.
func NewConnector(uri, database string, dialTimeout time.Duration, logger *slog.Logger) *Connector {
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Connector{
		uri:         uri,
		database:    database,
		dialTimeout: dialTimeout,
		logger:      logger,
		dial:        dialAndPing,
	}
}

func dialAndPing(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func (c *Connector) cached() *mongo.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

// Client returns the shared client, dialing it on first use.
func (c *Connector) Client(ctx context.Context) (*mongo.Client, error) {
	if client := c.cached(); client != nil {
		return client, nil
	}
	if c.uri == "" {
		return nil, ErrNotConfigured
	}

	ch := c.group.DoChan("connect", func() (any, error) {
		if client := c.cached(); client != nil {
			return client, nil
		}
		// The dial is detached from the first caller's cancellation.
		dialCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.dialTimeout)
		defer cancel()

		start := time.Now()
		client, err := c.dial(dialCtx, c.uri)
		if err != nil {
			c.logger.Error("mongodb connect failed", "err", err, "duration", time.Since(start))
			return nil, err
		}
		c.mu.Lock()
		c.client = client
		c.mu.Unlock()
		c.logger.Info("mongodb connected", "database", c.database, "duration", time.Since(start))
		return client, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("connect to mongodb: %w", res.Err)
		}
		return res.Val.(*mongo.Client), nil
	}
}

// Database returns the configured database on the shared client.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := c.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(c.database), nil
}

// Ping checks the primary is reachable, dialing first if needed.
func (c *Connector) Ping(ctx context.Context) error {
	client, err := c.Client(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx, readpref.Primary())
}

// Close disconnects the shared client if one was dialed. The connector may dial again afterwards.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.client = nil
	c.mu.Unlock()
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
