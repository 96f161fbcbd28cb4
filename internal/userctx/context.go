package userctx

import "context"

type contextKey string

const ownerIDContextKey contextKey = "owner_user_id"

// DefaultOwner is used when no authenticated owner is on the context,
// which happens when auth is disabled (AUTH_MODE=none).
const DefaultOwner = "default"

func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerIDContextKey, ownerID)
}

func GetOwnerID(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(ownerIDContextKey).(string)
	return ownerID, ok
}

// OwnerID returns the owner on the context, falling back to DefaultOwner.
func OwnerID(ctx context.Context) string {
	if id, ok := GetOwnerID(ctx); ok && id != "" {
		return id
	}
	return DefaultOwner
}
