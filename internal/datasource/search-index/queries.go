package searchindex

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"placement-directory/internal/models"
)

var ErrMissingIndex = errors.New("index name is required")

const defaultMaxResults = 1000

// BuildListAllRequest builds a match_all search returning documents in
// their original load order.
func BuildListAllRequest(index string, size int) (*esapi.SearchRequest, error) {
	if index == "" {
		return nil, ErrMissingIndex
	}
	if size <= 0 {
		size = defaultMaxResults
	}

	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"match_all": map[string]interface{}{},
		},
		"sort": []interface{}{
			map[string]interface{}{"position": map[string]interface{}{"order": "asc"}},
		},
		"track_total_hits": true,
	}

	body, err := json.Marshal(queryBody)
	if err != nil {
		return nil, err
	}

	return &esapi.SearchRequest{
		Index: []string{index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}, nil
}

// IndexMapping is the mapping used when the indexer creates the index.
// Nested records are stored as plain objects; they are only ever read back
// whole.
var IndexMapping = map[string]interface{}{
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"position":       map[string]interface{}{"type": "integer"},
			"id":             map[string]interface{}{"type": "keyword"},
			"name":           map[string]interface{}{"type": "text", "fields": map[string]interface{}{"keyword": map[string]interface{}{"type": "keyword"}}},
			"industry":       map[string]interface{}{"type": "keyword"},
			"headquarters":   map[string]interface{}{"type": "text"},
			"size":           map[string]interface{}{"type": "keyword"},
			"averagePackage": map[string]interface{}{"type": "float"},
			"placementRate":  map[string]interface{}{"type": "float"},
			"hiringTrend":    map[string]interface{}{"type": "keyword"},
			"minCGPA":        map[string]interface{}{"type": "float"},
			"salaryRanges":   map[string]interface{}{"type": "object", "enabled": false},
			"interviewProcess": map[string]interface{}{
				"type":    "object",
				"enabled": false,
			},
		},
	},
}

type indexedCompany struct {
	Position int `json:"position"`
	models.Company
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source indexedCompany `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
		Error  struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}
