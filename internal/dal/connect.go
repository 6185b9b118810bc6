package dal

import (
	"context"
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"
	"github.com/rs/zerolog/log"

	"stealthcompany.com/notesync/internal/config"
)

// Connection represents the Couchbase connection
type Connection struct {
	cluster    *gocb.Cluster
	bucket     *gocb.Bucket
	bucketName string
}

// NewConnection creates a new Couchbase connection and ensures the indexes
// needed for patient lookup exist.
func NewConnection(cfg *config.Config) (*Connection, error) {
	cluster, err := gocb.Connect(cfg.CouchbaseURL, gocb.ClusterOptions{
		Authenticator: gocb.PasswordAuthenticator{
			Username: cfg.CouchbaseUsername,
			Password: cfg.CouchbasePassword,
		},
		TimeoutsConfig: gocb.TimeoutsConfig{
			ConnectTimeout:    60 * time.Second,
			KVTimeout:         5 * time.Second,
			QueryTimeout:      30 * time.Second,
			ManagementTimeout: 30 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Couchbase: %w", err)
	}

	bucket := cluster.Bucket(cfg.CouchbaseBucket)

	err = bucket.WaitUntilReady(90*time.Second, &gocb.WaitUntilReadyOptions{
		Context:      context.Background(),
		ServiceTypes: []gocb.ServiceType{gocb.ServiceTypeKeyValue, gocb.ServiceTypeQuery},
	})
	if err != nil {
		return nil, fmt.Errorf("couchbase bucket not ready: %w", err)
	}

	conn := &Connection{
		cluster:    cluster,
		bucket:     bucket,
		bucketName: cfg.CouchbaseBucket,
	}

	conn.createIndexes(context.Background())

	log.Info().
		Str("couchbase_url", cfg.CouchbaseURL).
		Str("bucket", cfg.CouchbaseBucket).
		Msg("Couchbase connection initialized successfully")

	return conn, nil
}

// createIndexes creates the secondary indexes used by N1QL lookups. The
// array index on legacyGuids backs the any-member-matches patient lookup.
func (c *Connection) createIndexes(ctx context.Context) {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_type ON `" + c.bucketName + "`(`type`)",
		"CREATE INDEX IF NOT EXISTS idx_legacyGuids ON `" + c.bucketName + "`(DISTINCT ARRAY g FOR g IN `legacyGuids` END) WHERE `type` = 'PatientProfile'",
	}

	for _, indexQuery := range indexes {
		_, err := c.cluster.Query(indexQuery, &gocb.QueryOptions{Context: ctx})
		if err != nil {
			log.Warn().Err(err).Str("query", indexQuery).Msg("Failed to create index (may already exist)")
		} else {
			log.Debug().Str("query", indexQuery).Msg("Index created successfully")
		}
	}
}

// Close closes the Couchbase connection
func (c *Connection) Close() error {
	if c.cluster != nil {
		return c.cluster.Close(nil)
	}
	return nil
}

// Collection returns the default collection for KV operations
func (c *Connection) Collection() *gocb.Collection {
	return c.bucket.DefaultCollection()
}

// Cluster returns the Couchbase cluster
func (c *Connection) Cluster() *gocb.Cluster {
	return c.cluster
}

// BucketName returns the Couchbase bucket name
func (c *Connection) BucketName() string {
	return c.bucketName
}
