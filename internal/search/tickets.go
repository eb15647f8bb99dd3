package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/MustafaTaha09/Complaint-System/internal/config"
	"github.com/MustafaTaha09/Complaint-System/internal/models"
)

const TicketIndex = "tickets"

func NewClient(cfg *config.Config) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ES_URL},
		Username:  cfg.ES_USER,
		Password:  cfg.ES_PASSWORD,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error: %s: %s", res.Status(), body)
	}
	return client, nil
}

// IndexTicket upserts one ticket document; called after ticket creation
// and updates so the public search endpoint stays current.
func IndexTicket(ctx context.Context, es *elasticsearch.Client, t *models.Ticket) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	res, err := es.Index(
		TicketIndex,
		bytes.NewReader(data),
		es.Index.WithDocumentID(strconv.FormatUint(uint64(t.ID), 10)),
		es.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index ticket %d: %s", t.ID, res.Status())
	}
	return nil
}

// SearchTickets runs a fuzzy multi-match over title and description.
func SearchTickets(ctx context.Context, es *elasticsearch.Client, query string, from, size int) (int64, []models.Ticket, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(TicketIndex),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search tickets: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Ticket `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	tickets := make([]models.Ticket, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		tickets[i] = hit.Source
	}
	return r.Hits.Total.Value, tickets, nil
}
