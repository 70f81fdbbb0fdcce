// Package search keeps Elasticsearch copies of users and exercises for lookup.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/exercise-tracker/pkg/events"
)

const requestTimeout = 3 * time.Second

// Index writes and queries the users and exercises indices.
type Index struct {
	ES             *elasticsearch.Client
	UsersIndex     string
	ExercisesIndex string
}

func NewIndex(es *elasticsearch.Client, usersIndex, exercisesIndex string) *Index {
	return &Index{ES: es, UsersIndex: usersIndex, ExercisesIndex: exercisesIndex}
}

// Enabled reports whether a client is configured.
func (i *Index) Enabled() bool { return i != nil && i.ES != nil }

// Apply indexes the document carried by a creation event.
func (i *Index) Apply(ctx context.Context, ev events.Event) error {
	switch ev.Type {
	case events.UserCreated:
		return i.put(ctx, i.UsersIndex, ev.UserID, map[string]any{
			"user_id":    ev.UserID,
			"username":   ev.Username,
			"created_at": ev.OccurredAt.Format(time.RFC3339Nano),
		})
	case events.ExerciseCreated:
		return i.put(ctx, i.ExercisesIndex, strconv.FormatInt(ev.ExerciseID, 10), map[string]any{
			"user_id":     ev.UserID,
			"description": ev.Description,
			"duration":    ev.Duration,
			"date":        ev.Date,
		})
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
}

func (i *Index) put(ctx context.Context, index, id string, doc map[string]any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: index, DocumentID: id, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index %s/%s: %s", index, id, res.Status())
	}
	return nil
}

// SearchUsers runs a prefix-friendly match on username.
func (i *Index) SearchUsers(ctx context.Context, q string, size int) ([]entity.User, error) {
	if !i.Enabled() {
		return []entity.User{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"match_phrase_prefix": map[string]any{
				"username": q,
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.ES.Search(i.ES.Search.WithContext(c), i.ES.Search.WithIndex(i.UsersIndex), i.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", i.UsersIndex, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source struct {
					UserID   string `json:"user_id"`
					Username string `json:"username"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.User, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, entity.User{ID: h.Source.UserID, Username: h.Source.Username})
	}
	return out, nil
}
