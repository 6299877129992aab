package session

import "context"

type StoreInterface interface {
	Create(ctx context.Context, s *Session) (string, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

var _ StoreInterface = (*RedisStore)(nil)
