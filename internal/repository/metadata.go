package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskplan/taskplan-go/internal/model"
)

// ErrMetadataUnavailable is returned when the relational store was
// unreachable at boot and the repository has no connection to work with.
var ErrMetadataUnavailable = errors.New("metadata store unavailable")

// MetadataRepository handles the advisory task_metadata records in the
// relational store. Failures here are the caller's to tolerate; db may be
// nil when the store never came up.
type MetadataRepository struct {
	db *sql.DB
}

// NewMetadataRepository creates a new MetadataRepository.
func NewMetadataRepository(db *sql.DB) *MetadataRepository {
	return &MetadataRepository{db: db}
}

// Insert records the side-channel metadata for a newly created task.
func (r *MetadataRepository) Insert(ctx context.Context, meta model.TaskMetadata) error {
	if r.db == nil {
		return ErrMetadataUnavailable
	}
	query := `INSERT INTO task_metadata (task_id, user_id, priority, category)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (task_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, meta.TaskID, meta.UserID, meta.Priority, meta.Category)
	if err != nil {
		return fmt.Errorf("insert metadata: %w", err)
	}
	return nil
}

// Delete removes the metadata record for a task. Deleting a record that was
// never written (a failed earlier insert) is not an error.
func (r *MetadataRepository) Delete(ctx context.Context, taskID string) error {
	if r.db == nil {
		return ErrMetadataUnavailable
	}

	_, err := r.db.ExecContext(ctx, `DELETE FROM task_metadata WHERE task_id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("delete metadata: %w", err)
	}
	return nil
}

// StatsByPriority aggregates the user's metadata records per priority.
func (r *MetadataRepository) StatsByPriority(ctx context.Context, userID string) ([]model.PriorityCount, error) {
	if r.db == nil {
		return nil, ErrMetadataUnavailable
	}

	query := `SELECT priority, COUNT(*) AS total FROM task_metadata
		WHERE user_id = $1 GROUP BY priority ORDER BY priority`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	stats := []model.PriorityCount{}
	for rows.Next() {
		var pc model.PriorityCount
		if err := rows.Scan(&pc.Priority, &pc.Total); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats = append(stats, pc)
	}

	return stats, rows.Err()
}
