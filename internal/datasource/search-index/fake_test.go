package searchindex

import (
	"bufio"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/require"
)

// fakeNode is an in-memory stand-in for a single Elasticsearch node. It
// understands just enough of the API for the provider and the indexer.
type fakeNode struct {
	mu          sync.Mutex
	index       string
	exists      bool
	docs        []json.RawMessage
	searchCode  int
	failBulkAt  int
	lastSearch  map[string]interface{}
	createCalls int
}

func newFakeNode(t *testing.T, index string) (*fakeNode, *elasticsearch.Client) {
	t.Helper()
	node := &fakeNode{index: index, searchCode: http.StatusOK, failBulkAt: -1}

	server := httptest.NewServer(http.HandlerFunc(node.serve))
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return node, client
}

// with runs fn while holding the node lock, for setup and assertions from
// the test goroutine.
func (n *fakeNode) with(fn func(n *fakeNode)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fn(n)
}

func (n *fakeNode) serve(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == "":
		_, _ = io.WriteString(w, `{"version":{"number":"8.11.0"},"tagline":"You Know, for Search"}`)

	case path == "/"+n.index+"/_search":
		n.search(w, r)

	case path == "/_bulk":
		n.bulk(w, r)

	case path == "/"+n.index && r.Method == http.MethodHead:
		if n.exists {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}

	case path == "/"+n.index && r.Method == http.MethodPut:
		n.exists = true
		n.createCalls++
		_, _ = io.WriteString(w, `{"acknowledged":true,"index":"`+n.index+`"}`)

	case path == "/"+n.index && r.Method == http.MethodDelete:
		n.exists = false
		n.docs = nil
		_, _ = io.WriteString(w, `{"acknowledged":true}`)

	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"type":"index_not_found_exception"},"status":404}`)
	}
}

func (n *fakeNode) search(w http.ResponseWriter, r *http.Request) {
	_ = json.NewDecoder(r.Body).Decode(&n.lastSearch)

	if !n.exists {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"type":"index_not_found_exception"},"status":404}`)
		return
	}
	if n.searchCode != http.StatusOK {
		w.WriteHeader(n.searchCode)
		_, _ = io.WriteString(w, `{"error":{"type":"search_phase_execution_exception"},"status":400}`)
		return
	}

	hits := make([]map[string]interface{}, 0, len(n.docs))
	size := len(n.docs)
	if s := r.URL.Query().Get("size"); s != "" {
		if limit, err := strconv.Atoi(s); err == nil && limit < size {
			size = limit
		}
	}
	for _, doc := range n.docs[:size] {
		hits = append(hits, map[string]interface{}{"_source": doc})
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"hits": map[string]interface{}{
			"total": map[string]interface{}{"value": len(n.docs), "relation": "eq"},
			"hits":  hits,
		},
	})
}

func (n *fakeNode) bulk(w http.ResponseWriter, r *http.Request) {
	scanner := bufio.NewScanner(r.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	items := []map[string]interface{}{}
	line := 0
	for scanner.Scan() {
		if line%2 == 1 {
			item := len(items)
			status := http.StatusCreated
			result := map[string]interface{}{"status": status}
			if item == n.failBulkAt {
				result = map[string]interface{}{
					"status": http.StatusBadRequest,
					"error":  map[string]interface{}{"type": "mapper_parsing_exception", "reason": "failed to parse"},
				}
			} else {
				n.docs = append(n.docs, json.RawMessage(append([]byte(nil), scanner.Bytes()...)))
			}
			items = append(items, map[string]interface{}{"index": result})
		}
		line++
	}
	n.exists = true

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"errors": n.failBulkAt >= 0,
		"items":  items,
	})
}
