package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

const searchIndex = "portal_records"

// indexForSearch pushes a record into Elasticsearch. Indexing is best
// effort: failures are logged and never propagated, so writes succeed
// even when the search cluster is down.
func (s *PortalService) indexForSearch(clientID, kind, id, code, title, content string) {
	if s.esClient == nil {
		return
	}

	doc := map[string]interface{}{
		"client_id": clientID,
		"kind":      kind,
		"code":      code,
		"title":     title,
		"content":   content,
		"timestamp": time.Now().UTC(),
	}

	body, err := json.Marshal(doc)
	if err != nil {
		log.Printf("[indexForSearch] Error marshaling %s %s: %v", kind, id, err)
		return
	}

	res, err := s.esClient.Index(
		searchIndex,
		bytes.NewReader(body),
		s.esClient.Index.WithDocumentID(id),
		s.esClient.Index.WithContext(context.Background()),
	)
	if err != nil {
		log.Printf("[indexForSearch] Elasticsearch indexing error for %s %s: %v", kind, id, err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("[indexForSearch] Elasticsearch indexing failed for %s %s: %s", kind, id, res.String())
	}
}

// Search runs a full-text query over the client's indexed records.
func (s *PortalService) Search(clientSlug, query string) ([]map[string]interface{}, error) {
	if s.esClient == nil {
		return nil, fmt.Errorf("elasticsearch client is not initialized")
	}

	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	searchQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"title^2", "content", "code"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"client_id": client.ID},
				},
			},
		},
	}
	body, err := json.Marshal(searchQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(context.Background()),
		s.esClient.Search.WithIndex(searchIndex),
		s.esClient.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search failed: %s", res.String())
	}

	var result map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	hitsMap, ok := result["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid hits structure in search response")
	}
	hitsArray, ok := hitsMap["hits"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid hits array in search response")
	}

	var records []map[string]interface{}
	for _, hit := range hitsArray {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		source, ok := hitMap["_source"].(map[string]interface{})
		if !ok {
			continue
		}
		records = append(records, source)
	}

	return records, nil
}
