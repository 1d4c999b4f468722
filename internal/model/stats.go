package model

// TaskCounts aggregates task totals from the primary store.
type TaskCounts struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}

// PriorityCount is one row of the relational per-priority aggregate.
type PriorityCount struct {
	Priority string `json:"priority"`
	Total    int64  `json:"total"`
}

// StatsResponse combines the aggregates of both stores. The relational side
// is advisory and may lag the primary side after metadata write failures.
type StatsResponse struct {
	MongoStats    TaskCounts      `json:"mongoStats"`
	PostgresStats []PriorityCount `json:"postgresStats"`
}

// HealthResponse reports process and per-database health.
type HealthResponse struct {
	Status                string            `json:"status"`
	Databases             map[string]string `json:"databases"`
	MetadataWriteFailures int64             `json:"metadata_write_failures"`
}
