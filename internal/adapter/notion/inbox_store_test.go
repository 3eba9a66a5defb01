package notion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"
)

// capture records the last request body seen by a stub API.
type capture struct {
	method string
	path   string
	body   []byte
}

func stubAPI(t *testing.T, cap *capture, response string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cap.method = r.Method
		cap.path = r.URL.Path
		cap.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(response))
	})
}

func TestInboxStore_ListOpen_Query(t *testing.T) {
	t.Parallel()

	var cap capture
	client, _ := newTestClient(t, stubAPI(t, &cap, `{"results": []}`))
	store := NewInboxStore(client, "inbox-db")

	if _, err := store.ListOpen(context.Background(), 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	type propFilter struct {
		Property string         `json:"property"`
		RichText map[string]any `json:"rich_text"`
		Date     map[string]any `json:"date"`
	}
	var q struct {
		PageSize int `json:"page_size"`
		Filter   struct {
			And []propFilter `json:"and"`
		} `json:"filter"`
		Sorts []Sort `json:"sorts"`
	}
	if err := json.Unmarshal(cap.body, &q); err != nil {
		t.Fatalf("decode query: %v", err)
	}
	if q.PageSize != 20 {
		t.Errorf("page_size: %d", q.PageSize)
	}
	if len(q.Filter.And) != 2 {
		t.Fatalf("filter branches: %+v", q.Filter)
	}
	if f := q.Filter.And[0]; f.Property != "Processed" || f.RichText["is_empty"] != true {
		t.Errorf("marker filter: %+v", f)
	}
	if f := q.Filter.And[1]; f.Property != "Processed At" || f.Date["is_empty"] != true {
		t.Errorf("processed date filter: %+v", f)
	}
	if len(q.Sorts) != 1 || q.Sorts[0].Property != "Created" || q.Sorts[0].Direction != "ascending" {
		t.Errorf("sorts: %+v", q.Sorts)
	}
}

func TestInboxStore_Claim_WritesMarker(t *testing.T) {
	t.Parallel()

	var cap capture
	client, _ := newTestClient(t, stubAPI(t, &cap, `{"id": "item-1", "properties": {}}`))
	store := NewInboxStore(client, "inbox-db")

	if err := store.Claim(context.Background(), "item-1", "processing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cap.method != http.MethodPatch || cap.path != "/v1/pages/item-1" {
		t.Fatalf("request: %s %s", cap.method, cap.path)
	}

	var body struct {
		Properties map[string]struct {
			RichText []RichText `json:"rich_text"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(cap.body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	runs := body.Properties["Processed"].RichText
	if len(runs) != 1 || runs[0].Text.Content != "processing" {
		t.Fatalf("marker runs: %+v", runs)
	}
}

func TestInboxStore_Restore_ClearsMarkerAndDate(t *testing.T) {
	t.Parallel()

	var cap capture
	client, _ := newTestClient(t, stubAPI(t, &cap, `{"id": "item-1", "properties": {}}`))
	store := NewInboxStore(client, "inbox-db")

	if err := store.Restore(context.Background(), "item-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(cap.body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got := string(body.Properties["Processed"]); got != `{"rich_text":[]}` {
		t.Errorf("Processed must be cleared with an empty run list, got %s", got)
	}
	if got := string(body.Properties["Processed At"]); got != `{"date":null}` {
		t.Errorf("Processed At must be cleared with an explicit null, got %s", got)
	}
}

func TestInboxStore_PageMapping(t *testing.T) {
	t.Parallel()

	response := `{
		"id": "item-1",
		"properties": {
			"Name": {"title": []},
			"Source": {"rich_text": [{"plain_text": "Email"}]},
			"Created": {"date": {"start": "2024-05-09T12:00:00Z"}},
			"Processed": {"rich_text": [{"plain_text": "moved to Do"}]},
			"Processed At": {"date": {"start": "2024-05-10T09:00:00Z"}}
		}
	}`
	var cap capture
	client, _ := newTestClient(t, stubAPI(t, &cap, response))
	store := NewInboxStore(client, "inbox-db")

	item, err := store.Get(context.Background(), "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Title != "Untitled" {
		t.Errorf("empty title must map to Untitled, got %q", item.Title)
	}
	if item.ProcessedMarker != "moved to Do" {
		t.Errorf("marker: %q", item.ProcessedMarker)
	}
	if item.Claimable() {
		t.Error("processed item must not be claimable")
	}
	if !item.CreatedAt.Equal(time.Date(2024, 5, 9, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("created at: %v", item.CreatedAt)
	}
}
