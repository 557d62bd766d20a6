package library

import "context"

type viewerKey struct{}

// WithViewer records the id of the authenticated user a request reads on
// behalf of. Views derived for that request carry the user's own ratings.
func WithViewer(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, viewerKey{}, userID)
}

// ViewerFrom returns the id stored by WithViewer, or "" for anonymous reads.
func ViewerFrom(ctx context.Context) string {
	id, _ := ctx.Value(viewerKey{}).(string)
	return id
}
