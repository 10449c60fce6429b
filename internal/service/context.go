package service

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	ctxUserIDKey    ctxKey = "userID"
	ctxUserEmailKey ctxKey = "userEmail"
)

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxUserIDKey, id)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ctxUserIDKey).(uuid.UUID)
	return v, ok
}

func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxUserEmailKey, email)
}

func UserEmailFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxUserEmailKey).(string)
	return v, ok
}

func requireAuth(ctx context.Context) (uuid.UUID, error) {
	uid, ok := UserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, ErrUnauthorized
	}
	return uid, nil
}
