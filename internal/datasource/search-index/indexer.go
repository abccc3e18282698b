package searchindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"

	"placement-directory/internal/common/logger"
	"placement-directory/internal/models"
)

// Indexer writes catalog documents into the search index.
type Indexer struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIndexer(client *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	return &Indexer{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"index": index}),
	}
}

// EnsureIndex creates the index with IndexMapping unless it already exists.
func (ix *Indexer) EnsureIndex(ctx context.Context) (bool, error) {
	if ix.index == "" {
		return false, ErrMissingIndex
	}

	res, err := ix.client.Indices.Exists([]string{ix.index}, ix.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return false, nil
	case http.StatusNotFound:
	default:
		return false, fmt.Errorf("check index: %s", res.Status())
	}

	body, err := json.Marshal(IndexMapping)
	if err != nil {
		return false, err
	}
	res, err = ix.client.Indices.Create(ix.index,
		ix.client.Indices.Create.WithContext(ctx),
		ix.client.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return false, fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return false, fmt.Errorf("create index: %s", res.String())
	}

	ix.logger.Info("index created", nil)
	return true, nil
}

// Reset drops the index. A missing index is not an error.
func (ix *Indexer) Reset(ctx context.Context) error {
	res, err := ix.client.Indices.Delete([]string{ix.index},
		ix.client.Indices.Delete.WithContext(ctx),
		ix.client.Indices.Delete.WithIgnoreUnavailable(true),
	)
	if err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete index: %s", res.Status())
	}
	return nil
}

// Index bulk-writes companies keyed by their load position and refreshes the
// index so the documents are immediately searchable. Returns the number of
// documents accepted.
func (ix *Indexer) Index(ctx context.Context, companies []models.Company) (int, error) {
	if len(companies) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i, c := range companies {
		pos := i + 1
		meta := map[string]interface{}{
			"index": map[string]interface{}{"_index": ix.index, "_id": strconv.Itoa(pos)},
		}
		if err := enc.Encode(meta); err != nil {
			return 0, err
		}
		if err := enc.Encode(indexedCompany{Position: pos, Company: c}); err != nil {
			return 0, err
		}
	}

	res, err := ix.client.Bulk(bytes.NewReader(buf.Bytes()),
		ix.client.Bulk.WithContext(ctx),
		ix.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return 0, fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("bulk index: %s", res.String())
	}

	var r bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, fmt.Errorf("decode bulk response: %w", err)
	}

	indexed := 0
	var firstErr error
	for _, item := range r.Items {
		for _, result := range item {
			if result.Status >= 200 && result.Status < 300 {
				indexed++
				continue
			}
			if firstErr == nil {
				firstErr = fmt.Errorf("bulk item failed: %s: %s", result.Error.Type, result.Error.Reason)
			}
		}
	}

	ix.logger.Info("bulk index finished", map[string]interface{}{
		"submitted": len(companies),
		"indexed":   indexed,
	})

	if firstErr != nil {
		return indexed, firstErr
	}
	return indexed, nil
}
