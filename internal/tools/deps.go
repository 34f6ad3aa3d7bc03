package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/recall/internal/embed"
	"github.com/agenthands/recall/internal/graph"
	"github.com/agenthands/recall/internal/openmemory"
	"github.com/agenthands/recall/internal/vector"
)

// rawEchoLimit caps the raw write-API response echoed back when no outcome
// matched the expected shape.
const rawEchoLimit = 500

// Deps holds the backend clients every tool operation needs. It is built
// once at startup and passed in explicitly; tool calls share nothing else.
type Deps struct {
	Embedder embed.Embedder
	Vector   *vector.Client
	Memories *openmemory.Client
	Graph    *graph.Store
	UserID   string
}

// SearchMemories embeds the query and runs a similarity search scoped to the
// configured user, returning one rendered line per hit.
func (d *Deps) SearchMemories(ctx context.Context, query string) (string, error) {
	vec, err := d.Embedder.Embed(ctx, query)
	if err != nil {
		return "", err
	}

	hits, err := d.Vector.Search(ctx, vec, d.UserID)
	if err != nil {
		return "", err
	}
	if len(hits) == 0 {
		return "No matching memories found.", nil
	}

	var lines []string
	for _, hit := range hits {
		content := vector.MemoryText(hit.Payload)
		lines = append(lines, fmt.Sprintf("- %s (relevance: %.2f)", content, hit.Score))
	}
	return strings.Join(lines, "\n"), nil
}

// AddMemory stores text through the write API so the relational log and the
// vector index are updated together. The vector index is never written
// directly on this path.
func (d *Deps) AddMemory(ctx context.Context, text string) (string, error) {
	res, err := d.Memories.Add(ctx, text, d.UserID)
	if err != nil {
		return "", err
	}

	if len(res.Outcomes) == 0 && len(res.Raw) == 0 {
		return fmt.Sprintf("Memory submitted successfully (stored via %s)", d.Memories.BaseURL()), nil
	}

	var stored []string
	for _, o := range res.Outcomes {
		switch o.Event {
		case "ADD", "UPDATE", "":
			stored = append(stored, o.StoredText())
		}
	}
	if len(stored) > 0 {
		return fmt.Sprintf("Stored %d memory/memories: %s", len(stored), strings.Join(stored, "; ")), nil
	}

	raw := string(res.Raw)
	if len(raw) > rawEchoLimit {
		raw = raw[:rawEchoLimit]
	}
	return fmt.Sprintf("Memory processed. Response: %s", raw), nil
}

// ListMemories returns up to one page of the user's memories, newest-native
// order, one line per record with an 8-character id prefix and provenance.
func (d *Deps) ListMemories(ctx context.Context) (string, error) {
	points, err := d.Vector.Scroll(ctx, d.UserID)
	if err != nil {
		return "", err
	}
	if len(points) == 0 {
		return "No memories stored.", nil
	}

	var lines []string
	for _, p := range points {
		id := vector.IDString(p.ID)
		if len(id) > 8 {
			id = id[:8]
		}
		content := vector.MemoryText(p.Payload)
		source := vector.SourceTag(p.Payload)
		lines = append(lines, fmt.Sprintf("- [%s] (%s) %s", id, source, content))
	}
	return fmt.Sprintf("%d memories:\n%s", len(points), strings.Join(lines, "\n")), nil
}

// DeleteMemory removes a memory through the write API, which cleans both its
// relational log and the vector index. When the write API rejects the id
// with an HTTP-status error (it does not own records created by other
// writers) the point is deleted directly from the vector index instead. Any
// other failure class propagates without a fallback attempt.
func (d *Deps) DeleteMemory(ctx context.Context, memoryID string) (string, error) {
	err := d.Memories.Delete(ctx, memoryID)
	if err == nil {
		return fmt.Sprintf("Deleted memory %s", memoryID), nil
	}

	var statusErr *openmemory.StatusError
	if !errors.As(err, &statusErr) {
		return "", err
	}

	if err := d.Vector.DeleteByID(ctx, memoryID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted memory %s (from the vector store directly)", memoryID), nil
}

// SearchGraph finds entities matching the query and their one-hop
// connections, deduplicated for display.
func (d *Deps) SearchGraph(ctx context.Context, query string) (string, error) {
	hits, err := d.Graph.SearchEntities(ctx, query)
	if err != nil {
		return "", err
	}
	if len(hits) == 0 {
		return fmt.Sprintf("No graph entities found matching '%s'.", query), nil
	}

	var lines []string
	for _, hit := range hits {
		if hit.HasEdge {
			lines = append(lines, fmt.Sprintf("- %s --[%s]--> %s", hit.Source, hit.Relation, hit.Target))
		} else {
			lines = append(lines, fmt.Sprintf("- %s (no relationships)", hit.Source))
		}
	}
	return fmt.Sprintf("%d graph results:\n%s", len(lines), strings.Join(lines, "\n")), nil
}

// GetEntity returns the full incoming and outgoing neighborhood of one
// entity. Not-found and found-but-isolated render as distinct results.
func (d *Deps) GetEntity(ctx context.Context, name string) (string, error) {
	entity, err := d.Graph.GetEntity(ctx, name)
	if err != nil {
		return "", err
	}
	if entity == nil {
		return fmt.Sprintf("Entity '%s' not found in graph.", name), nil
	}

	lines := []string{fmt.Sprintf("Entity: %s", entity.Name)}

	if len(entity.Outgoing) > 0 {
		lines = append(lines, "", "Outgoing:")
		for _, r := range entity.Outgoing {
			lines = append(lines, fmt.Sprintf("  --> [%s] %s", r.Label, r.Other))
		}
	}
	if len(entity.Incoming) > 0 {
		lines = append(lines, "", "Incoming:")
		for _, r := range entity.Incoming {
			lines = append(lines, fmt.Sprintf("  <-- [%s] %s", r.Label, r.Other))
		}
	}
	if len(entity.Outgoing) == 0 && len(entity.Incoming) == 0 {
		lines = append(lines, "  (no relationships)")
	}

	return strings.Join(lines, "\n"), nil
}
