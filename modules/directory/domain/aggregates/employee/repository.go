package employee

import "context"

// Repository is the remote employee store. Writes report success only; callers
// observe the result by listing again.
type Repository interface {
	GetAll(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, data Fields) error
	Update(ctx context.Context, id string, data Fields) error
	Delete(ctx context.Context, id string) error
}
