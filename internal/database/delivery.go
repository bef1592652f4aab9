package database

import (
	"fmt"

	"github.com/yuchengtw/duty-roster-bot/internal/domain/contract"
	"github.com/yuchengtw/duty-roster-bot/internal/domain/entity"
)

type deliveryRepo struct {
	db dbConn
}

func newDeliveryRepo(db dbConn) contract.DeliveryRepo {
	return &deliveryRepo{db: db}
}

func (r *deliveryRepo) Record(delivery *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (group_id, kind, duty, ok, error, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		delivery.GroupID,
		delivery.Kind,
		delivery.Duty,
		delivery.OK,
		delivery.Error,
		delivery.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record delivery: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	delivery.ID = id
	return nil
}

func (r *deliveryRepo) ListRecent(limit int) ([]*entity.Delivery, error) {
	query := `
		SELECT id, group_id, kind, duty, ok, error, sent_at
		FROM deliveries
		ORDER BY sent_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []*entity.Delivery
	for rows.Next() {
		delivery := &entity.Delivery{}
		err := rows.Scan(
			&delivery.ID,
			&delivery.GroupID,
			&delivery.Kind,
			&delivery.Duty,
			&delivery.OK,
			&delivery.Error,
			&delivery.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}
		deliveries = append(deliveries, delivery)
	}

	return deliveries, rows.Err()
}
