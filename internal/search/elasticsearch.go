// Package search holds the Elasticsearch-backed flight catalog. The catalog
// is optional: when it is not configured, or a query returns no hits, the
// search service falls back to the random flight generator.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"skyfare/internal/models"
)

type Config struct {
	URL        string
	Index      string
	Username   string
	Password   string
	MaxRetries int
}

// Enabled reports whether an Elasticsearch URL was configured.
func (cfg Config) Enabled() bool {
	return cfg.URL != ""
}

type FlightCatalog struct {
	client *elasticsearch.Client
	index  string
}

func NewFlightCatalog(cfg Config) (*FlightCatalog, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{cfg.URL},
		Username:      cfg.Username,
		Password:      cfg.Password,
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	catalog := &FlightCatalog{client: es, index: cfg.Index}

	if err := catalog.ensureIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return catalog, nil
}

func (c *FlightCatalog) ensureIndex(ctx context.Context) error {
	existsReq := esapi.IndicesExistsRequest{Index: []string{c.index}}

	res, err := existsReq.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		slog.Info("Elasticsearch index already exists", "index", c.index)
		return nil
	}

	mapping := map[string]any{
		"settings": map[string]any{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]any{
			"properties": map[string]any{
				"airline":       map[string]any{"type": "keyword"},
				"flightNumber":  map[string]any{"type": "keyword"},
				"source":        map[string]any{"type": "keyword"},
				"destination":   map[string]any{"type": "keyword"},
				"departureTime": map[string]any{"type": "date"},
				"arrivalTime":   map[string]any{"type": "date"},
				"duration":      map[string]any{"type": "keyword"},
				"baseFare":      map[string]any{"type": "long"},
			},
		},
	}

	body, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal index mapping: %w", err)
	}

	createReq := esapi.IndicesCreateRequest{
		Index: c.index,
		Body:  bytes.NewReader(body),
	}

	createRes, err := createReq.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("index creation returned %s", createRes.Status())
	}

	slog.Info("Created Elasticsearch index", "index", c.index)
	return nil
}

// IndexFlight adds one flight to the catalog. Used by cmd/generator.
func (c *FlightCatalog) IndexFlight(ctx context.Context, flight models.Flight) error {
	body, err := json.Marshal(flight)
	if err != nil {
		return fmt.Errorf("failed to marshal flight: %w", err)
	}

	req := esapi.IndexRequest{
		Index: c.index,
		Body:  bytes.NewReader(body),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to index flight: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("indexing returned %s", res.Status())
	}
	return nil
}

// Search queries the catalog by route and optional departure date, returning
// at most size flights. An empty result is not an error; callers fall back to
// the generator.
func (c *FlightCatalog) Search(ctx context.Context, source, destination, date string, size int) ([]models.Flight, error) {
	must := []map[string]any{
		{"term": map[string]any{"source": source}},
		{"term": map[string]any{"destination": destination}},
	}
	if date != "" {
		must = append(must, map[string]any{
			"range": map[string]any{
				"departureTime": map[string]any{
					"gte": date,
					"lt":  date + "||+1d",
				},
			},
		})
	}

	query := map[string]any{
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{"must": must},
		},
		"sort": []map[string]any{
			{"departureTime": map[string]any{"order": "asc"}},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	res, err := c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(c.index),
		c.client.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search returned %s", res.Status())
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.Flight `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	flights := make([]models.Flight, 0, len(parsed.Hits.Hits))
	for i, hit := range parsed.Hits.Hits {
		flight := hit.Source
		if flight.ID == 0 {
			flight.ID = int64(i + 1)
		}
		flights = append(flights, flight)
	}
	return flights, nil
}
