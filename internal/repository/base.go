// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"campusforum/internal/observability"

	"gorm.io/gorm"
)

// Recency ordering shared by every listing; id breaks timestamp ties.
const newestFirst = "created_at DESC, id DESC"

// track opens a repository span and latency sample; the returned func closes both.
func track(ctx context.Context, operation, table string) (context.Context, func(error)) {
	ctx, span := observability.StartRepositorySpan(ctx, operation, table)
	done := observability.TrackQuery(operation, table)
	return ctx, func(err error) {
		done()
		observability.EndSpan(span, err)
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns a LIKE pattern matching s literally anywhere in a
// column. Use with ESCAPE '\' and fold case on both sides in SQL.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
