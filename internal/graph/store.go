package graph

import (
	"context"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/recall/internal/config"
)

// Store reads the relationship graph. The graph is populated by an external
// extraction pipeline; nothing here creates, mutates, or deletes nodes.
//
// The bolt connection is dialed on first use and shared for the process
// lifetime. The driver pools sessions internally, so concurrent tool calls
// may use the store without extra locking.
type Store struct {
	cfg config.Neo4jConfig

	once sync.Once
	exec Executor
	bolt *boltExecutor
	err  error
}

func NewStore(cfg config.Neo4jConfig) *Store {
	return &Store{cfg: cfg}
}

// NewStoreWithExecutor bypasses the bolt dial; used by tests.
func NewStoreWithExecutor(exec Executor) *Store {
	s := &Store{exec: exec}
	s.once.Do(func() {})
	return s
}

func (s *Store) executor() (Executor, error) {
	s.once.Do(func() {
		bolt, err := newBoltExecutor(s.cfg.URI, s.cfg.User, s.cfg.Password)
		if err != nil {
			s.err = err
			return
		}
		s.bolt = bolt
		s.exec = bolt
	})
	if s.err != nil {
		return nil, s.err
	}
	return s.exec, nil
}

func (s *Store) Close(ctx context.Context) error {
	if s.bolt == nil {
		return nil
	}
	return s.bolt.close(ctx)
}

// Hit is one deduplicated row from an entity search: either a directed edge
// or a lone entity with no outgoing relationships.
type Hit struct {
	Source   string
	Relation string
	Target   string
	HasEdge  bool
}

// SearchEntities finds nodes whose name or id contains term
// (case-insensitive) and expands one outward hop per match. Rows are capped
// at 25 before deduplication; duplicate (source, relation, target) triples
// collapse to one hit. An empty slice means nothing matched.
func (s *Store) SearchEntities(ctx context.Context, term string) ([]Hit, error) {
	exec, err := s.executor()
	if err != nil {
		return nil, err
	}

	result, err := exec.ExecuteQuery(ctx, searchEntitiesQuery, map[string]any{"search_term": term})
	if err != nil {
		return nil, err
	}

	type edgeKey struct {
		source, relation, target string
	}
	seen := make(map[edgeKey]bool)
	var hits []Hit

	for _, rec := range result.Records {
		source := firstString(rec, "source", "source_id")
		if source == "" {
			source = "?"
		}

		if relation := stringValue(rec, "relation"); relation != "" {
			rel := stringValue(rec, "rel_detail")
			if rel == "" {
				rel = relation
			}
			target := firstString(rec, "target", "target_id")
			if target == "" {
				target = "?"
			}
			key := edgeKey{source, rel, target}
			if seen[key] {
				continue
			}
			seen[key] = true
			hits = append(hits, Hit{Source: source, Relation: rel, Target: target, HasEdge: true})
		} else {
			key := edgeKey{source: source}
			if seen[key] {
				continue
			}
			seen[key] = true
			hits = append(hits, Hit{Source: source})
		}
	}

	return hits, nil
}

// Relation is one edge adjacent to an entity, with the human-readable detail
// property preferred over the raw edge type for display.
type Relation struct {
	Label string
	Other string
}

// Entity is a node plus its full single-hop neighborhood.
type Entity struct {
	Name     string
	Outgoing []Relation
	Incoming []Relation
}

// GetEntity resolves name (case-insensitive exact match on name or id) and
// expands outgoing and incoming edges. A nil entity with nil error means no
// node matched; a matched node with no relations comes back with empty edge
// lists.
func (s *Store) GetEntity(ctx context.Context, name string) (*Entity, error) {
	exec, err := s.executor()
	if err != nil {
		return nil, err
	}

	result, err := exec.ExecuteQuery(ctx, getEntityQuery, map[string]any{"entity_name": name})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, nil
	}

	rec := result.Records[0]
	entityName := stringValue(rec, "entity")
	if entityName == "" {
		return nil, nil
	}

	return &Entity{
		Name:     entityName,
		Outgoing: collectRelations(rec, "outgoing"),
		Incoming: collectRelations(rec, "incoming"),
	}, nil
}

func collectRelations(rec *neo4j.Record, key string) []Relation {
	raw, ok := rec.Get(key)
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	var relations []Relation
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rel, _ := m["rel"].(string)
		if rel == "" {
			continue
		}
		if detail, _ := m["detail"].(string); detail != "" {
			rel = detail
		}
		other, _ := m["other"].(string)
		if other == "" {
			other = "?"
		}
		relations = append(relations, Relation{Label: rel, Other: other})
	}
	return relations
}

func stringValue(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func firstString(rec *neo4j.Record, keys ...string) string {
	for _, key := range keys {
		if s := stringValue(rec, key); s != "" {
			return s
		}
	}
	return ""
}
