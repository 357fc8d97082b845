// Package net holds request scoped ids shared by middleware and handlers
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyConversationID ctxKey = "conversation_id"

// WithRequest stores the request id under chi's key and the Open Floor conversation id.
// Empty values are skipped
func WithRequest(ctx context.Context, reqID, conversationID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if conversationID != "" {
		ctx = context.WithValue(ctx, keyConversationID, conversationID)
	}
	return ctx
}

// RequestID returns the request id set by chi's RequestID middleware or WithRequest
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// ConversationID returns the conversation id on the context if present
func ConversationID(ctx context.Context) string {
	v, _ := ctx.Value(keyConversationID).(string)
	return v
}
