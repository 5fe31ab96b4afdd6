package usecases

import (
	"context"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/infrastructure/cache"
	"vetiver/internal/shared/logger"
)

// recordEvent appends an audit-trail entry after a successful mutation.
// The mutation has already committed, so a failure here is logged and
// swallowed rather than surfaced.
func recordEvent(ctx context.Context, events ticket.EventRepository, log logger.Interface, ticketID *uint, action string, detail map[string]any) {
	if events == nil {
		return
	}
	event := &ticket.Event{
		TicketID: ticketID,
		Action:   action,
		Detail:   detail,
	}
	if err := events.Append(ctx, event); err != nil {
		log.Warnw("failed to record ticket event", "action", action, "error", err)
	}
}

// invalidateStats drops the cached statistics report so the next read
// reflects the mutation. Fail-open: a cache failure never fails the request.
func invalidateStats(ctx context.Context, statsCache cache.StatsCache, log logger.Interface) {
	if statsCache == nil {
		return
	}
	if err := statsCache.Invalidate(ctx); err != nil {
		log.Warnw("failed to invalidate stats cache", "error", err)
	}
}
