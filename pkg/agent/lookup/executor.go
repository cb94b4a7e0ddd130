package lookup

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"plans-assistant-be/pkg/agent/query"
	"plans-assistant-be/pkg/catalog"
	"plans-assistant-be/pkg/querystore"
)

// ErrorResult is the structured payload substituted for catalog responses
// when the fan-out cannot run: the store query failed, or it succeeded but
// produced no usable lookup keys. Later stages consume it unchanged
// instead of aborting.
type ErrorResult struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Result is the fan-out stage output: one catalog response per lookup key,
// or a single ErrorResult when the stage short-circuited.
type Result struct {
	Responses map[string]catalog.Response
	Failure   *ErrorResult
}

// IsError reports whether the fan-out short-circuited.
func (r Result) IsError() bool {
	return r.Failure != nil
}

// MarshalJSON renders the aggregation map on success and the error shape
// on a short-circuit, matching what the response synthesizer embeds.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failure != nil {
		return json.Marshal(r.Failure)
	}
	return json.Marshal(r.Responses)
}

// Executor runs the structured query against the store and fans out one
// catalog lookup per key extracted from the result rows.
type Executor struct {
	store   querystore.Store
	catalog catalog.Client
	logger  *log.Logger
}

func NewExecutor(store querystore.Store, catalogClient catalog.Client, logger *log.Logger) *Executor {
	return &Executor{
		store:   store,
		catalog: catalogClient,
		logger:  logger,
	}
}

// Execute sends the structured query verbatim to the store.
func (e *Executor) Execute(ctx context.Context, structuredQuery string) *querystore.Result {
	e.logger.Printf("[LOOKUP] Executing query against store")
	result := e.store.Execute(ctx, structuredQuery)
	e.logger.Printf("[LOOKUP] Store result: success=%v rows=%d", result.Success, len(result.Rows))
	return result
}

// FanOut issues one catalog lookup per key present in the store rows.
//
// Calls are strictly serial, in row order, each fully resolved before the
// next begins. Keys are not de-duplicated: a key appearing twice produces
// two calls, and the second response overwrites the first in the
// aggregation map (last write wins). Two conditions short-circuit before
// any call is made: a failed store result, and a row set yielding zero
// keys. Individual call failures are captured per key and do not abort
// the remaining lookups.
func (e *Executor) FanOut(ctx context.Context, storeResult *querystore.Result, intent query.Intent) Result {
	if !storeResult.Success {
		e.logger.Printf("[LOOKUP] Store query failed, skipping catalog calls")
		details := storeResult.Message
		if details == "" {
			details = "Unknown error"
		}
		return Result{Failure: &ErrorResult{
			Error:   "Database query failed",
			Details: details,
		}}
	}

	keys := extractKeys(storeResult.Rows, intent.KeyColumn())
	e.logger.Printf("[LOOKUP] Found %s: %v", intent.Noun(), keys)

	if len(keys) == 0 {
		return Result{Failure: &ErrorResult{
			Error:   "No " + intent.Noun() + " found",
			Details: "The database query did not return any " + intent.Noun(),
		}}
	}

	responses := make(map[string]catalog.Response, len(keys))
	for _, key := range keys {
		path := intent.ResourcePath(key)
		e.logger.Printf("[LOOKUP] Calling catalog: %s", path)

		response := e.catalog.Request(ctx, path, "GET")
		if response.IsError() {
			e.logger.Printf("[LOOKUP] Catalog call failed for %q: %s", key, response.Err)
		}
		responses[key] = response
	}

	return Result{Responses: responses}
}

// extractKeys pulls the key column value from each row, in row order.
// Column matching ignores case since Postgres folds unquoted identifiers
// to lowercase. Rows missing the column, or holding a non-text value,
// contribute no key.
func extractKeys(rows []map[string]any, column string) []string {
	var keys []string
	for _, row := range rows {
		value := columnValue(row, column)
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok {
			keys = append(keys, s)
		}
	}
	return keys
}

func columnValue(row map[string]any, column string) any {
	if v, ok := row[column]; ok {
		return v
	}
	for k, v := range row {
		if strings.EqualFold(k, column) {
			return v
		}
	}
	return nil
}
