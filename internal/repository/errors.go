package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"scribe/internal/database"
	"scribe/internal/models"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// Conflict messages surfaced to clients.
const (
	MsgUsernameTaken = "Username already registered"
	MsgEmailTaken    = "Email already registered"
)

// uniqueViolation reports whether err is a unique constraint failure and, if
// so, which user field it concerns ("username", "email" or "").
func uniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		return classify(pgErr.ConstraintName + " " + pgErr.Detail), true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") || strings.Contains(msg, pgUniqueViolation) {
		return classify(msg), true
	}
	return "", false
}

func classify(s string) string {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, database.UsernameIndex), strings.Contains(s, "username"):
		return "username"
	case strings.Contains(s, database.EmailIndex), strings.Contains(s, "email"):
		return "email"
	default:
		return ""
	}
}

// translateUserWriteError maps a failed user insert or update to an AppError.
func translateUserWriteError(err error) error {
	field, ok := uniqueViolation(err)
	if !ok {
		return models.NewInternalError(err)
	}
	switch field {
	case "email":
		return models.NewConflictError(MsgEmailTaken)
	case "username":
		return models.NewConflictError(MsgUsernameTaken)
	default:
		return models.NewConflictError("User already exists")
	}
}
