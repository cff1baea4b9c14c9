package usecases_port

import (
	"context"
)

type CreateListUseCasePort interface {
	Execute(ctx context.Context, name string) error
}
