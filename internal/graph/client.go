// Package graph wraps the Neo4j driver with connection lifecycle management
// and idempotent node upserts keyed by (name, label).
package graph

import (
	"context"
	"fmt"
	"log"
	"os"
	"regexp"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Environment variables recognized by FromEnv.
const (
	EnvURI      = "GRAPH_URI"
	EnvUsername = "GRAPH_USERNAME"
	EnvPassword = "GRAPH_PASSWORD"
	EnvDatabase = "GRAPH_DATABASE"

	defaultURI      = "bolt://localhost:7687"
	defaultUsername = "neo4j"
	defaultDatabase = "neo4j"
)

// labelPattern is the allowlist for node labels. Labels are substituted into
// query text rather than bound as parameters, so anything outside this
// pattern is rejected before it reaches the query builder.
var labelPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidLabel reports whether s is safe to use as a node label.
func ValidLabel(s string) bool {
	return labelPattern.MatchString(s)
}

// Client manages a single logical connection to a graph database. The
// zero-value lifecycle is Disconnected -> Connect -> Connected -> Disconnect.
// Client is not safe for concurrent use; the pipeline is sequential.
type Client struct {
	URI      string
	Username string
	Password string
	Database string

	driver neo4j.DriverWithContext
}

// NewClient builds a disconnected client. Call Connect before use.
func NewClient(uri, username, password, database string) *Client {
	if database == "" {
		database = defaultDatabase
	}
	return &Client{
		URI:      uri,
		Username: username,
		Password: password,
		Database: database,
	}
}

// FromEnv builds a client from GRAPH_URI, GRAPH_USERNAME, GRAPH_PASSWORD and
// GRAPH_DATABASE. The password has no default; its absence is a
// configuration error raised here, before any connection attempt.
func FromEnv() (*Client, error) {
	uri := os.Getenv(EnvURI)
	if uri == "" {
		uri = defaultURI
	}
	username := os.Getenv(EnvUsername)
	if username == "" {
		username = defaultUsername
	}
	password := os.Getenv(EnvPassword)
	if password == "" {
		return nil, fmt.Errorf("graph: %s environment variable is required", EnvPassword)
	}
	database := os.Getenv(EnvDatabase)
	if database == "" {
		database = defaultDatabase
	}
	return NewClient(uri, username, password, database), nil
}

// Connect establishes the driver and runs a liveness probe so bad credentials
// or an unreachable host fail fast. On failure the client stays Disconnected.
func (c *Client) Connect(ctx context.Context) error {
	driver, err := neo4j.NewDriverWithContext(c.URI, neo4j.BasicAuth(c.Username, c.Password, ""))
	if err != nil {
		return &ConnectionError{Op: "connect", Cause: err}
	}
	c.driver = driver
	if _, err := c.Run(ctx, livenessQuery, nil); err != nil {
		c.driver = nil
		_ = driver.Close(ctx)
		return &ConnectionError{Op: "connect", Cause: err}
	}
	log.Printf("Connected to graph at %s", c.URI)
	return nil
}

// Disconnect closes the connection. Calling it while already Disconnected is
// a no-op.
func (c *Client) Disconnect(ctx context.Context) error {
	if c.driver == nil {
		return nil
	}
	err := c.driver.Close(ctx)
	c.driver = nil
	log.Println("Disconnected from graph")
	return err
}

// WithConnection runs fn against a connected client and guarantees
// Disconnect on the way out, whether fn succeeds or fails.
func (c *Client) WithConnection(ctx context.Context, fn func(*Client) error) error {
	if err := c.Connect(ctx); err != nil {
		return err
	}
	defer c.Disconnect(ctx)
	return fn(c)
}

// Run executes one Cypher statement against the configured database and
// returns every result record as a key-value map. A missing connection is a
// *ConnectionError; a driver-level failure is re-raised as a *QueryError
// wrapping the cause.
func (c *Client) Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	if c.driver == nil {
		return nil, notConnected("run")
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: c.Database})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, &QueryError{Op: "run", Cause: err}
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, &QueryError{Op: "run", Cause: err}
	}

	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.AsMap())
	}
	return rows, nil
}

// Upsert finds-or-creates the node labeled nodeType whose name property is
// name, then merges props onto it: properties not mentioned are retained,
// conflicting keys are overwritten, and name itself is always forced into
// the map. Repeated calls with the same (name, nodeType) mutate one node.
// Returns the node's full property map after the merge.
func (c *Client) Upsert(ctx context.Context, name, nodeType string, props map[string]any) (map[string]any, error) {
	if c.driver == nil {
		return nil, notConnected("upsert")
	}
	if !ValidLabel(nodeType) {
		return nil, &QueryError{Op: "upsert", Cause: fmt.Errorf("invalid node label %q", nodeType)}
	}

	merged := make(map[string]any, len(props)+1)
	for k, v := range props {
		merged[k] = v
	}
	merged["name"] = name

	query := fmt.Sprintf(upsertNodeQuery, nodeType)
	rows, err := c.Run(ctx, query, map[string]any{
		"name":  name,
		"props": merged,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &QueryError{Op: "upsert", Cause: fmt.Errorf("no result returned for node %q", name)}
	}

	node, ok := rows[0]["n"].(neo4j.Node)
	if !ok {
		return nil, &QueryError{Op: "upsert", Cause: fmt.Errorf("unexpected result shape for node %q", name)}
	}
	return node.Props, nil
}

// HealthCheck reports whether a trivial query succeeds on the live
// connection. It never returns an error: any failure, including being
// Disconnected, maps to false.
func (c *Client) HealthCheck(ctx context.Context) bool {
	if _, err := c.Run(ctx, livenessQuery, nil); err != nil {
		log.Printf("Health check failed: %v", err)
		return false
	}
	return true
}
