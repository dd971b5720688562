package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv(EnvURI, "")
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "secret")
	t.Setenv(EnvDatabase, "")

	client, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "bolt://localhost:7687", client.URI)
	assert.Equal(t, "neo4j", client.Username)
	assert.Equal(t, "secret", client.Password)
	assert.Equal(t, "neo4j", client.Database)
}

func TestFromEnv_MissingPassword(t *testing.T) {
	t.Setenv(EnvURI, "bolt://example:7687")
	t.Setenv(EnvPassword, "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPassword)
}

func TestFromEnv_ExplicitValues(t *testing.T) {
	t.Setenv(EnvURI, "neo4j://db.internal:7687")
	t.Setenv(EnvUsername, "ops")
	t.Setenv(EnvPassword, "secret")
	t.Setenv(EnvDatabase, "legacy")

	client, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "neo4j://db.internal:7687", client.URI)
	assert.Equal(t, "ops", client.Username)
	assert.Equal(t, "legacy", client.Database)
}

func TestRun_NotConnected(t *testing.T) {
	client := NewClient("bolt://localhost:7687", "neo4j", "pw", "neo4j")

	_, err := client.Run(context.Background(), "RETURN 1", nil)
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)

	// Never the query-error kind for a missing connection.
	var queryErr *QueryError
	assert.False(t, errors.As(err, &queryErr))
}

func TestUpsert_NotConnected(t *testing.T) {
	client := NewClient("bolt://localhost:7687", "neo4j", "pw", "neo4j")

	_, err := client.Upsert(context.Background(), "Test", "Label", nil)
	var connErr *ConnectionError
	assert.ErrorAs(t, err, &connErr)
}

func TestConnect_BadURI(t *testing.T) {
	client := NewClient("not-a-scheme://nowhere", "neo4j", "pw", "neo4j")

	err := client.Connect(context.Background())
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)

	// Client must be left Disconnected after a failed connect.
	_, err = client.Run(context.Background(), "RETURN 1", nil)
	assert.ErrorAs(t, err, &connErr)
}

func TestHealthCheck_NeverRaises(t *testing.T) {
	client := NewClient("not-a-scheme://nowhere", "neo4j", "pw", "neo4j")

	assert.False(t, client.HealthCheck(context.Background()))

	_ = client.Connect(context.Background())
	assert.False(t, client.HealthCheck(context.Background()))
}

func TestDisconnect_Idempotent(t *testing.T) {
	client := NewClient("bolt://localhost:7687", "neo4j", "pw", "neo4j")

	assert.NoError(t, client.Disconnect(context.Background()))
	assert.NoError(t, client.Disconnect(context.Background()))
}

func TestWithConnection_ConnectFailure(t *testing.T) {
	client := NewClient("not-a-scheme://nowhere", "neo4j", "pw", "neo4j")

	called := false
	err := client.WithConnection(context.Background(), func(*Client) error {
		called = true
		return nil
	})
	var connErr *ConnectionError
	assert.ErrorAs(t, err, &connErr)
	assert.False(t, called)
}

func TestValidLabel(t *testing.T) {
	valid := []string{"Person", "TST_LBL", "_internal", "Copybook", "Label2"}
	for _, label := range valid {
		assert.True(t, ValidLabel(label), "label %q", label)
	}

	invalid := []string{"", "2Label", "TST LBL", "`TST LBL`", "Label-Name", "a:b", "n) DETACH DELETE (m"}
	for _, label := range invalid {
		assert.False(t, ValidLabel(label), "label %q", label)
	}
}

func TestErrorTaxonomyWrapsCause(t *testing.T) {
	cause := errors.New("socket closed")

	queryErr := &QueryError{Op: "run", Cause: cause}
	assert.ErrorIs(t, queryErr, cause)
	assert.Contains(t, queryErr.Error(), "query failed")

	connErr := &ConnectionError{Op: "connect", Cause: cause}
	assert.ErrorIs(t, connErr, cause)
	assert.Contains(t, connErr.Error(), "connection failed")

	notConn := notConnected("run")
	assert.Contains(t, notConn.Error(), "not connected")
}
