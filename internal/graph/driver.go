package graph

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Executor runs one parameterized traversal query and returns the eager
// result. The bolt driver satisfies it in production; tests swap in a mock.
type Executor interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error)
}

type boltExecutor struct {
	driver neo4j.DriverWithContext
}

func newBoltExecutor(uri, user, password string) (*boltExecutor, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j: create driver: %w", err)
	}
	log.Debug("graph driver initialized", "uri", uri)
	return &boltExecutor{driver: driver}, nil
}

func (e *boltExecutor) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, e.driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("neo4j: execute query: %w", err)
	}
	return *result, nil
}

func (e *boltExecutor) close(ctx context.Context) error {
	return e.driver.Close(ctx)
}
