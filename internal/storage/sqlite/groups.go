package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/models"
	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/storage"
)

// CreateGroup persists a new group with its participants.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.ExpenseGroup) error {
	// Generate ID if not set
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expense_groups (id, name, created_at) VALUES (?, ?, ?)",
		group.ID, group.Name, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i, name := range group.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_participants (group_id, position, name) VALUES (?, ?, ?)",
			group.ID, i, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID, including its participants.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.ExpenseGroup, error) {
	group := &models.ExpenseGroup{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM expense_groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	participants, err := s.participantsByGroup(ctx, []string{group.ID})
	if err != nil {
		return nil, err
	}
	group.Participants = participants[group.ID]

	return group, nil
}

// ListGroups retrieves all groups, newest first.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.ExpenseGroup, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM expense_groups ORDER BY created_at DESC, rowid DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	groups := []*models.ExpenseGroup{}
	var ids []string
	for rows.Next() {
		group := &models.ExpenseGroup{}
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
		ids = append(ids, group.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	participants, err := s.participantsByGroup(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, group := range groups {
		group.Participants = participants[group.ID]
	}

	return groups, nil
}

// participantsByGroup loads participants for the given groups in creation order.
func (s *SQLiteStore) participantsByGroup(ctx context.Context, groupIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(groupIDs))
	if len(groupIDs) == 0 {
		return result, nil
	}

	args := make([]interface{}, len(groupIDs))
	for i, id := range groupIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT group_id, name FROM group_participants WHERE group_id IN ("+placeholders(len(groupIDs))+") ORDER BY group_id, position",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID, name string
		if err := rows.Scan(&groupID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		result[groupID] = append(result[groupID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return result, nil
}
