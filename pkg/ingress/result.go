// pkg/ingress/result.go
package ingress

// QueryResult is the outcome of an ad hoc source query. Data echoes the raw
// result set, including columns outside the canonical schema; PersistedCount
// reports how many normalized rows reached the warehouse.
type QueryResult struct {
	Success        bool                     `json:"success"`
	Data           []map[string]interface{} `json:"data"`
	RowCount       int                      `json:"row_count"`
	Columns        []string                 `json:"columns"`
	PersistedCount int                      `json:"persisted_count"`
}

// FileResult is the outcome of a file upload.
type FileResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	RowsProcessed int    `json:"rows_processed"`
	RowsPersisted int    `json:"rows_persisted"`
}

// ConnectionResult is the outcome of a connection test.
type ConnectionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// EntityInfo describes one canonical entity for UI listings.
type EntityInfo struct {
	Tag         string   `json:"tag"`
	Table       string   `json:"table"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description"`
	Fields      []string `json:"fields"`
}

// LoadResult reports one warehouse load attempt. Persisted stays zero when
// the load failed; the failure itself is never propagated.
type LoadResult struct {
	BatchID   string `json:"batch_id"`
	Attempted int    `json:"attempted"`
	Persisted int    `json:"persisted"`
}
