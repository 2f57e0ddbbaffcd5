package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"
)

type contextKey string

const (
	CorrelationIDKey contextKey = "correlation_id"
	RequestIDKey     contextKey = "request_id"
)

// Logger wraps slog.Logger with service conventions
type Logger struct {
	*slog.Logger
	serviceName string
}

// Config holds logger configuration
type Config struct {
	ServiceName string
	Level       string
	Format      string // "json" or "text"
}

// NewLogger creates a structured logger for the service
func NewLogger(cfg Config) *Logger {
	level := parseLevel(cfg.Level)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
	)

	return &Logger{
		Logger:      logger,
		serviceName: cfg.ServiceName,
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithContext returns a logger enriched with request-scoped identifiers
func (l *Logger) WithContext(ctx context.Context) *Logger {
	logger := l.Logger

	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok && correlationID != "" {
		logger = logger.With(slog.String("correlation_id", correlationID))
	}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		logger = logger.With(slog.String("request_id", requestID))
	}

	return &Logger{Logger: logger, serviceName: l.serviceName}
}

// WithComponent returns a logger tagged with a component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:      l.Logger.With(slog.String("component", component)),
		serviceName: l.serviceName,
	}
}

// WithError returns a logger with an error attribute
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return &Logger{
		Logger:      l.Logger.With(slog.String("error", err.Error())),
		serviceName: l.serviceName,
	}
}

// BusinessEvent describes a domain-level occurrence worth an audit line
type BusinessEvent struct {
	EventType  string
	EntityType string
	EntityID   string
	Action     string
	RelatedIDs map[string]string
}

// LogBusinessEvent emits a structured audit record for a domain event
func (l *Logger) LogBusinessEvent(ctx context.Context, event BusinessEvent) {
	attrs := []slog.Attr{
		slog.String("event_type", event.EventType),
		slog.String("entity_type", event.EntityType),
		slog.String("entity_id", event.EntityID),
		slog.String("action", event.Action),
		slog.Time("occurred_at", time.Now().UTC()),
	}

	for key, value := range event.RelatedIDs {
		attrs = append(attrs, slog.String("related_"+key, value))
	}

	l.WithContext(ctx).LogAttrs(ctx, slog.LevelInfo, "business_event", attrs...)
}

// LogDatabaseQuery logs a database operation with timing
func (l *Logger) LogDatabaseQuery(ctx context.Context, collection, operation string, duration time.Duration, err error) {
	logger := l.WithContext(ctx)

	attrs := []slog.Attr{
		slog.String("collection", collection),
		slog.String("operation", operation),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		logger.LogAttrs(ctx, slog.LevelError, "database_query_failed", attrs...)
		return
	}

	logger.LogAttrs(ctx, slog.LevelDebug, "database_query", attrs...)
}

// LogKafkaPublish logs an event publish attempt with timing
func (l *Logger) LogKafkaPublish(ctx context.Context, topic, eventType string, duration time.Duration, err error) {
	logger := l.WithContext(ctx)

	attrs := []slog.Attr{
		slog.String("topic", topic),
		slog.String("event_type", eventType),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		logger.LogAttrs(ctx, slog.LevelError, "kafka_publish_failed", attrs...)
		return
	}

	logger.LogAttrs(ctx, slog.LevelDebug, "kafka_publish", attrs...)
}

// ContextWithCorrelationID stores a correlation ID in the context
func ContextWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}

// ContextWithRequestID stores a request ID in the context
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// CorrelationIDFromContext extracts the correlation ID from the context
func CorrelationIDFromContext(ctx context.Context) string {
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}
	return ""
}
