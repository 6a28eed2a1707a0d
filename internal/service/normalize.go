package service

import (
	"strings"

	"taskboard/internal/models"
)

// NormalizeEmail lowercases and trims an email address. Idempotent: applying
// it twice yields the same value.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeStatus case-folds a status value into the TODO/IN_PROGRESS/DONE
// set. The literal "completed" is accepted as an alias for DONE. Anything else
// reports ok=false and the caller leaves the stored status unchanged.
func normalizeStatus(status string) (models.TaskStatus, bool) {
	switch upper := models.TaskStatus(strings.ToUpper(status)); upper {
	case models.StatusTodo, models.StatusInProgress, models.StatusDone:
		return upper, true
	}
	if status == "completed" {
		return models.StatusDone, true
	}
	return "", false
}
