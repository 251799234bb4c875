package api

import (
	"time"

	"github.com/bbz662/english-teacher/app/tasks"
)

const (
	feedCheckCompleted  = "Scheduled RSS check completed successfully"
	internalServerError = "Internal Server Error"
	notFound            = "Not Found"
)

type Handler struct {
	newRunner   tasks.RunnerFactory
	version     string
	taskTimeout time.Duration
	startedAt   time.Time
}
