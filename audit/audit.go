// Package audit records one immutable UserActionLog row per user-visible
// catalog operation. The write is awaited in-line with the request; it is
// not transactional with the entity mutation, so a failed audit write can
// fail a request whose entity write already landed.
package audit

import (
	"context"
	"fmt"
	"time"

	"musicapp/logger"
	"musicapp/model"
	"musicapp/repository"
)

// Action type tags persisted in UserActionLog.ActionType.
const (
	ActionViewList            = "ViewList"
	ActionView                = "View"
	ActionCreate              = "Create"
	ActionUpdate              = "Update"
	ActionDelete              = "Delete"
	ActionRate                = "Rate"
	ActionAddToFavorites      = "AddToFavorites"
	ActionRemoveFromFavorites = "RemoveFromFavorites"
	ActionMarkAsListened      = "MarkAsListened"
)

// Entity type tags persisted in UserActionLog.EntityType.
const (
	EntityMusician = "Musician"
	EntityAlbum    = "Album"
	EntityTrack    = "Track"
)

const unknownOrigin = "Unknown"

// RequestMeta carries the request origin recorded with each entry.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type metaKey struct{}

// WithMeta stores request metadata in the context for later audit writes.
func WithMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, metaKey{}, meta)
}

// MetaFrom extracts request metadata from the context, defaulting both
// fields to "Unknown" when the middleware did not run.
func MetaFrom(ctx context.Context) RequestMeta {
	if meta, ok := ctx.Value(metaKey{}).(RequestMeta); ok {
		if meta.IPAddress == "" {
			meta.IPAddress = unknownOrigin
		}
		if meta.UserAgent == "" {
			meta.UserAgent = unknownOrigin
		}
		return meta
	}
	return RequestMeta{IPAddress: unknownOrigin, UserAgent: unknownOrigin}
}

// Logger records user actions.
type Logger interface {
	// Log appends one audit entry. EntityID is 0 for list-level actions.
	Log(ctx context.Context, actionType, entityType string, entityID int64, details string) error

	// LogTrackRated appends a Rate entry for a track.
	LogTrackRated(ctx context.Context, trackID int64, rating model.RatingType) error
}

// dbLogger writes audit entries through the action log repository and mirrors
// each entry to the application log.
type dbLogger struct {
	logs repository.ActionLogRepository
}

// NewLogger creates an audit logger backed by the action log repository.
func NewLogger(logs repository.ActionLogRepository) Logger {
	return &dbLogger{logs: logs}
}

func (l *dbLogger) Log(ctx context.Context, actionType, entityType string, entityID int64, details string) error {
	meta := MetaFrom(ctx)

	logger.Info("user action",
		logger.String("ip", meta.IPAddress),
		logger.String("actionType", actionType),
		logger.String("entityType", entityType),
		logger.Int64("entityId", entityID),
		logger.String("details", details),
	)

	entry := &model.UserActionLog{
		UserID:     meta.IPAddress, // actor identity is derived from the request origin
		ActionType: actionType,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		Timestamp:  time.Now().UTC(),
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	}

	return l.logs.Create(ctx, entry)
}

func (l *dbLogger) LogTrackRated(ctx context.Context, trackID int64, rating model.RatingType) error {
	return l.Log(ctx, ActionRate, EntityTrack, trackID, fmt.Sprintf("Rating: %s", rating))
}
