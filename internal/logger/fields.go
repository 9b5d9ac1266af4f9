package logger

import (
	"context"

	"go.uber.org/zap"
)

type fieldsKey struct{}

// RequestFields identify the request a log line belongs to
type RequestFields struct {
	RequestID string
	SessionID string
	Viewer    string
}

// WithRequestFields returns a context whose loggers carry the given request fields.
// Empty fields keep the value already present in ctx.
func WithRequestFields(ctx context.Context, fields RequestFields) context.Context {
	current, _ := ctx.Value(fieldsKey{}).(RequestFields)
	if fields.RequestID == "" {
		fields.RequestID = current.RequestID
	}
	if fields.SessionID == "" {
		fields.SessionID = current.SessionID
	}
	if fields.Viewer == "" {
		fields.Viewer = current.Viewer
	}
	return context.WithValue(ctx, fieldsKey{}, fields)
}

// RequestFieldsFromContext returns the request fields stored in ctx
func RequestFieldsFromContext(ctx context.Context) RequestFields {
	fields, _ := ctx.Value(fieldsKey{}).(RequestFields)
	return fields
}

func fieldsFromContext(ctx context.Context) []zap.Field {
	rf := RequestFieldsFromContext(ctx)

	var fields []zap.Field
	if rf.RequestID != "" {
		fields = append(fields, zap.String("request_id", rf.RequestID))
	}
	if rf.SessionID != "" {
		fields = append(fields, zap.String("session_id", rf.SessionID))
	}
	if rf.Viewer != "" {
		fields = append(fields, zap.String("viewer", rf.Viewer))
	}
	return fields
}
