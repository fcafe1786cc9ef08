package es

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/snake_catalogue/internal/models"
)

// ErrDisabled is returned by a nil *SnakeIndex.
var ErrDisabled = errors.New("search is disabled")

type SnakeIndex struct {
	Client *elasticsearch.Client
	Index  string
}

func NewSnakeIndex(client *elasticsearch.Client, index string) *SnakeIndex {
	return &SnakeIndex{Client: client, Index: index}
}

func (s *SnakeIndex) Enabled() bool { return s != nil && s.Client != nil }

func (s *SnakeIndex) IndexSnake(ctx context.Context, snake *models.Snake) error {
	if !s.Enabled() {
		return nil
	}
	body, err := json.Marshal(snake)
	if err != nil {
		return fmt.Errorf("es: marshal snake: %w", err)
	}

	res, err := s.Client.Index(
		s.Index,
		bytes.NewReader(body),
		s.Client.Index.WithContext(ctx),
		s.Client.Index.WithDocumentID(strconv.FormatUint(uint64(snake.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("es: index snake %d: %w", snake.ID, err)
	}
	defer res.Body.Close()
	return responseError(res, "index")
}

func (s *SnakeIndex) DeleteSnake(ctx context.Context, id uint) error {
	if !s.Enabled() {
		return nil
	}
	res, err := s.Client.Delete(
		s.Index,
		strconv.FormatUint(uint64(id), 10),
		s.Client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("es: delete snake %d: %w", id, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	return responseError(res, "delete")
}

// Search runs a fuzzy match over species and description, species weighing double.
func (s *SnakeIndex) Search(ctx context.Context, query string, from, size int) (int64, []models.Snake, error) {
	if !s.Enabled() {
		return 0, nil, ErrDisabled
	}
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"snake_species^2", "snake_description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("es: encode query: %w", err)
	}

	res, err := s.Client.Search(
		s.Client.Search.WithContext(ctx),
		s.Client.Search.WithIndex(s.Index),
		s.Client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("es: search: %w", err)
	}
	defer res.Body.Close()
	if err := responseError(res, "search"); err != nil {
		return 0, nil, err
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Snake `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("es: decode search response: %w", err)
	}

	snakes := make([]models.Snake, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		snakes[i] = hit.Source
	}
	return r.Hits.Total.Value, snakes, nil
}

func responseError(res *esapi.Response, op string) error {
	if !res.IsError() {
		return nil
	}
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("es: %s: %s: %s", op, res.Status(), body)
}
