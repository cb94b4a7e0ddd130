package lookup

import (
	"context"
	"fmt"
	"io"
	"log"
	"reflect"
	"testing"

	"plans-assistant-be/pkg/agent/query"
	"plans-assistant-be/pkg/catalog"
	"plans-assistant-be/pkg/querystore"
)

// fakeStore hands back a canned result.
type fakeStore struct {
	result *querystore.Result
	query  string
}

func (f *fakeStore) Execute(ctx context.Context, q string) *querystore.Result {
	f.query = q
	return f.result
}

// fakeCatalog records every call, answering each with a payload that
// identifies the call's sequence number.
type fakeCatalog struct {
	paths []string
}

func (f *fakeCatalog) Request(ctx context.Context, resourcePath, method string) catalog.Response {
	f.paths = append(f.paths, resourcePath)
	return catalog.Response{Data: fmt.Sprintf("call-%d:%s", len(f.paths), resourcePath)}
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestExecutePassesQueryVerbatim(t *testing.T) {
	store := &fakeStore{result: &querystore.Result{Success: true}}
	e := NewExecutor(store, &fakeCatalog{}, testLogger())

	q := "SELECT Plans FROM plans WHERE Plans LIKE '%5G%'"
	e.Execute(context.Background(), q)

	if store.query != q {
		t.Errorf("store received %q, want %q", store.query, q)
	}
}

func TestFanOutStoreFailureShortCircuits(t *testing.T) {
	cat := &fakeCatalog{}
	e := NewExecutor(&fakeStore{}, cat, testLogger())

	result := e.FanOut(context.Background(), &querystore.Result{
		Success: false,
		Message: "Query execution failed: syntax error",
	}, query.IntentCategory)

	if !result.IsError() {
		t.Fatal("expected error result")
	}
	if result.Failure.Error != "Database query failed" {
		t.Errorf("error = %q, want %q", result.Failure.Error, "Database query failed")
	}
	if result.Failure.Details != "Query execution failed: syntax error" {
		t.Errorf("details = %q", result.Failure.Details)
	}
	if len(cat.paths) != 0 {
		t.Errorf("catalog call count = %d, want 0", len(cat.paths))
	}
}

func TestFanOutZeroKeysShortCircuits(t *testing.T) {
	tests := []struct {
		name      string
		intent    query.Intent
		rows      []map[string]any
		wantError string
	}{
		{
			name:      "no rows under category intent",
			intent:    query.IntentCategory,
			rows:      nil,
			wantError: "No categories found",
		},
		{
			name:      "no rows under item intent",
			intent:    query.IntentItem,
			rows:      nil,
			wantError: "No plans found",
		},
		{
			name:      "rows missing the key column",
			intent:    query.IntentCategory,
			rows:      []map[string]any{{"Plans": "5G Infinite"}},
			wantError: "No categories found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := &fakeCatalog{}
			e := NewExecutor(&fakeStore{}, cat, testLogger())

			result := e.FanOut(context.Background(), &querystore.Result{
				Success: true,
				Rows:    tt.rows,
			}, tt.intent)

			if !result.IsError() {
				t.Fatal("expected error result")
			}
			if result.Failure.Error != tt.wantError {
				t.Errorf("error = %q, want %q", result.Failure.Error, tt.wantError)
			}
			if len(cat.paths) != 0 {
				t.Errorf("catalog call count = %d, want 0", len(cat.paths))
			}
		})
	}
}

func TestFanOutDuplicateKeysLastWriteWins(t *testing.T) {
	cat := &fakeCatalog{}
	e := NewExecutor(&fakeStore{}, cat, testLogger())

	result := e.FanOut(context.Background(), &querystore.Result{
		Success: true,
		Rows: []map[string]any{
			{"Category": "Mobile"},
			{"Category": "Mobile"},
			{"Category": "Internet"},
		},
	}, query.IntentCategory)

	if result.IsError() {
		t.Fatalf("unexpected error result: %+v", result.Failure)
	}

	wantPaths := []string{
		"plans/category/Mobile",
		"plans/category/Mobile",
		"plans/category/Internet",
	}
	if !reflect.DeepEqual(cat.paths, wantPaths) {
		t.Errorf("call paths = %v, want %v", cat.paths, wantPaths)
	}

	if len(result.Responses) != 2 {
		t.Fatalf("aggregation has %d keys, want 2", len(result.Responses))
	}

	// Duplicate key holds the response from the second call, not the first.
	if got := result.Responses["Mobile"].Data; got != "call-2:plans/category/Mobile" {
		t.Errorf("Mobile holds %v, want the second call's response", got)
	}
	if got := result.Responses["Internet"].Data; got != "call-3:plans/category/Internet" {
		t.Errorf("Internet holds %v", got)
	}
}

func TestFanOutItemIntentUsesPlanPaths(t *testing.T) {
	cat := &fakeCatalog{}
	e := NewExecutor(&fakeStore{}, cat, testLogger())

	result := e.FanOut(context.Background(), &querystore.Result{
		Success: true,
		Rows: []map[string]any{
			{"Plans": "5G Infinite Premium"},
		},
	}, query.IntentItem)

	if result.IsError() {
		t.Fatalf("unexpected error result: %+v", result.Failure)
	}
	// No escaping: the space travels into the path as-is.
	if cat.paths[0] != "plans/5G Infinite Premium" {
		t.Errorf("path = %q", cat.paths[0])
	}
}

// failingCatalog rejects every call; remaining calls must still run.
type failingCatalog struct {
	calls int
}

func (f *failingCatalog) Request(ctx context.Context, resourcePath, method string) catalog.Response {
	f.calls++
	return catalog.Response{Err: "request failed with status code 503"}
}

func TestFanOutPerKeyFailureDoesNotAbort(t *testing.T) {
	cat := &failingCatalog{}
	e := NewExecutor(&fakeStore{}, cat, testLogger())

	result := e.FanOut(context.Background(), &querystore.Result{
		Success: true,
		Rows: []map[string]any{
			{"Category": "Mobile"},
			{"Category": "Internet"},
		},
	}, query.IntentCategory)

	if result.IsError() {
		t.Fatal("per-key failures must not become a stage error")
	}
	if cat.calls != 2 {
		t.Errorf("call count = %d, want 2", cat.calls)
	}
	for key, resp := range result.Responses {
		if !resp.IsError() {
			t.Errorf("key %q should hold an error response", key)
		}
	}
}
