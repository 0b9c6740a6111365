package handler

import (
	"context"
)

type navKey struct{}

// WithNavigation returns a context that captures the route passed to
// ContextNavigator.Navigate, and a pointer the route is written to.
func WithNavigation(ctx context.Context) (context.Context, *string) {
	route := new(string)
	return context.WithValue(ctx, navKey{}, route), route
}

// ContextNavigator delivers navigation signals to the request that caused
// them. Signals raised outside a WithNavigation context are dropped.
type ContextNavigator struct{}

func (ContextNavigator) Navigate(ctx context.Context, route string) {
	if dst, ok := ctx.Value(navKey{}).(*string); ok {
		*dst = route
	}
}
