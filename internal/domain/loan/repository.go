package loan

import "context"

type Repository interface {
	Create(ctx context.Context, r *Record) error
	List(ctx context.Context) ([]Record, error)
	GetByClientID(ctx context.Context, clientID string) (*Record, error)
	GetByClientIDForUpdate(ctx context.Context, clientID string) (*Record, error)
	Save(ctx context.Context, r *Record) error
	DeleteByClientID(ctx context.Context, clientID string) error
}
