package appctx

import "context"

// ContextKey is the shared type for all context keys in this codebase.
type ContextKey string

func (c ContextKey) String() string { return string(c) }

var (
	ContextKeyCorrelationId = ContextKey("CorrelationId")

	// ContextKeyTriggerSource records how a sync run was started
	// (schedule, manual, backfill). Used for run bookkeeping.
	ContextKeyTriggerSource = ContextKey("TriggerSource")
)

func GetString(ctx context.Context, key ContextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	return v, ok
}

func Set(ctx context.Context, key ContextKey, value any) context.Context {
	return context.WithValue(ctx, key, value)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return GetString(ctx, ContextKeyCorrelationId)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return Set(ctx, ContextKeyCorrelationId, correlationId)
}

func GetTriggerSourceFromContext(ctx context.Context) (string, bool) {
	return GetString(ctx, ContextKeyTriggerSource)
}

func SetTriggerSourceInContext(ctx context.Context, source string) context.Context {
	return Set(ctx, ContextKeyTriggerSource, source)
}
