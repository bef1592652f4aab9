package database

import (
	"database/sql"
	"fmt"

	"github.com/yuchengtw/duty-roster-bot/internal/domain/contract"
	"github.com/yuchengtw/duty-roster-bot/internal/domain/entity"
)

type groupRepo struct {
	db dbConn
}

func newGroupRepo(db dbConn) contract.GroupRepo {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(group *entity.Group) error {
	query := `
		INSERT INTO groups (name, group_id, is_preset)
		VALUES (?, ?, ?)
	`

	result, err := r.db.Exec(query,
		group.Name,
		group.GroupID,
		group.IsPreset,
	)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	group.ID = id
	return nil
}

func (r *groupRepo) GetByID(id int64) (*entity.Group, error) {
	group := &entity.Group{}
	query := `
		SELECT id, name, group_id, is_preset, created_at
		FROM groups
		WHERE id = ?
	`

	err := r.db.QueryRow(query, id).Scan(
		&group.ID,
		&group.Name,
		&group.GroupID,
		&group.IsPreset,
		&group.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

func (r *groupRepo) GetByGroupID(groupID string) (*entity.Group, error) {
	group := &entity.Group{}
	query := `
		SELECT id, name, group_id, is_preset, created_at
		FROM groups
		WHERE group_id = ?
	`

	err := r.db.QueryRow(query, groupID).Scan(
		&group.ID,
		&group.Name,
		&group.GroupID,
		&group.IsPreset,
		&group.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

func (r *groupRepo) List() ([]*entity.Group, error) {
	query := `
		SELECT id, name, group_id, is_preset, created_at
		FROM groups
		ORDER BY is_preset DESC, name
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*entity.Group
	for rows.Next() {
		group := &entity.Group{}
		err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.GroupID,
			&group.IsPreset,
			&group.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, rows.Err()
}

func (r *groupRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}
