package services

import (
	"context"
	"log"

	"github.com/you/wifiattend/domain"
)

// logActivity reports an event. Activity logging never fails the action.
func logActivity(ctx context.Context, logger domain.ActivityLogger, event *domain.ActivityEvent) {
	if logger == nil {
		return
	}
	if err := logger.LogEvent(ctx, event); err != nil {
		log.Printf("activity log: %v", err)
	}
}

// requireRole returns the signed-in identity when it has the given role
func requireRole(ctx context.Context, holder domain.SessionHolder, role domain.Role) (*domain.Identity, error) {
	id, err := holder.Identity(ctx)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, domain.ErrNotSignedIn
	}
	if id.Role != role {
		return nil, domain.ErrWrongRole
	}
	return id, nil
}
