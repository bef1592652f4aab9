package contract

import (
	"context"

	"github.com/yuchengtw/duty-roster-bot/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Group() GroupRepo
	Delivery() DeliveryRepo
}

// GroupRepo defines the contract for the announcement-target repository
type GroupRepo interface {
	Create(group *entity.Group) error
	GetByID(id int64) (*entity.Group, error)
	GetByGroupID(groupID string) (*entity.Group, error)
	List() ([]*entity.Group, error)
	Delete(id int64) error
}

// DeliveryRepo defines the contract for the delivery log repository
type DeliveryRepo interface {
	Record(delivery *entity.Delivery) error
	ListRecent(limit int) ([]*entity.Delivery, error)
}
