// Package remote is the authoritative document store. Collections map to
// Elasticsearch indices named <prefix><collection>.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
)

// pageSize is the number of hits fetched per search request.
var pageSize = 1000

var ErrUnavailable = errors.New("remote store unavailable")

// Store is the capability the repository needs from the remote side: keyed
// documents grouped in collections with equality queries.
type Store interface {
	Get(ctx context.Context, collection, id string, out interface{}) (bool, error)
	GetAll(ctx context.Context, collection string, out interface{}) error
	Query(ctx context.Context, collection, field string, value interface{}, out interface{}) error
	Put(ctx context.Context, collection, id string, doc interface{}) error
	Delete(ctx context.Context, collection, id string) error
}

type ElasticStore struct {
	client *elasticsearch.Client
	prefix string
}

func NewElasticStore(url, prefix string) (*ElasticStore, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
	})
	if err != nil {
		return nil, err
	}
	return &ElasticStore{client: client, prefix: prefix}, nil
}

func (s *ElasticStore) index(collection string) string {
	return s.prefix + collection
}

// Get decodes one document into out; false means it does not exist.
func (s *ElasticStore) Get(ctx context.Context, collection, id string, out interface{}) (bool, error) {
	res, err := s.client.Get(s.index(collection), id, s.client.Get.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if res.IsError() {
		return false, responseError(res)
	}

	var doc struct {
		Found  bool            `json:"found"`
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	if !doc.Found {
		return false, nil
	}
	return true, json.Unmarshal(doc.Source, out)
}

// GetAll decodes every document of the collection into out, a pointer to a slice.
func (s *ElasticStore) GetAll(ctx context.Context, collection string, out interface{}) error {
	return s.search(ctx, collection, map[string]interface{}{"match_all": map[string]interface{}{}}, out)
}

// Query returns the documents whose field equals value.
func (s *ElasticStore) Query(ctx context.Context, collection, field string, value interface{}, out interface{}) error {
	if _, ok := value.(string); ok {
		field += ".keyword"
	}
	return s.search(ctx, collection, map[string]interface{}{
		"term": map[string]interface{}{field: value},
	}, out)
}

// search pages through every hit with search_after on _id, so collections larger
// than one page are returned whole.
func (s *ElasticStore) search(ctx context.Context, collection string, query map[string]interface{}, out interface{}) error {
	sources := make([]json.RawMessage, 0)
	var after []interface{}
	for {
		request := map[string]interface{}{
			"query":            query,
			"sort":             []interface{}{map[string]interface{}{"_id": "asc"}},
			"track_total_hits": true,
		}
		if after != nil {
			request["search_after"] = after
		}
		body, err := json.Marshal(request)
		if err != nil {
			return err
		}

		page, found, err := s.searchPage(ctx, collection, body)
		if err != nil {
			return err
		}
		// index 尚未建立視為空集合
		if !found {
			break
		}
		for _, hit := range page.Hits.Hits {
			sources = append(sources, hit.Source)
		}
		if len(page.Hits.Hits) < pageSize || len(sources) >= page.Hits.Total.Value {
			break
		}
		after = page.Hits.Hits[len(page.Hits.Hits)-1].Sort
		if len(after) == 0 {
			return fmt.Errorf("search %s: hit without sort values", collection)
		}
	}

	raw, err := json.Marshal(sources)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

type searchResult struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source json.RawMessage `json:"_source"`
			Sort   []interface{}   `json:"sort"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticStore) searchPage(ctx context.Context, collection string, body []byte) (*searchResult, bool, error) {
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index(collection)),
		s.client.Search.WithBody(bytes.NewReader(body)),
		s.client.Search.WithSize(pageSize),
	)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if res.IsError() {
		return nil, false, responseError(res)
	}

	var page searchResult
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return nil, false, fmt.Errorf("decode %s search: %w", collection, err)
	}
	return &page, true, nil
}

// Put creates or replaces the document and waits for it to be searchable.
func (s *ElasticStore) Put(ctx context.Context, collection, id string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := s.client.Index(
		s.index(collection),
		bytes.NewReader(body),
		s.client.Index.WithDocumentID(id),
		s.client.Index.WithRefresh("true"),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError(res)
	}
	return nil
}

// Delete is idempotent; a missing document is not an error.
func (s *ElasticStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.client.Delete(
		s.index(collection),
		id,
		s.client.Delete.WithRefresh("true"),
		s.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		return responseError(res)
	}
	return nil
}

func responseError(res *esapi.Response) error {
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("elasticsearch %s: %s", res.Status(), strings.TrimSpace(string(body)))
}
