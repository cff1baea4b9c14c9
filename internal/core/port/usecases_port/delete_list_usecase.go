package usecases_port

import (
	"context"
)

type DeleteListUseCasePort interface {
	Execute(ctx context.Context, name string) error
}
