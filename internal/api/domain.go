package api

import (
	"docutrail/internal/audit"
	"docutrail/internal/directory"
	"docutrail/internal/documents"
	"docutrail/internal/notifications"
	"docutrail/internal/routing"
	"docutrail/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Directory     directory.System
	Documents     documents.System
	Audit         audit.Store
	Routing       routing.Store
	Notifications notifications.System
	Workflow      workflow.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	conn := runtime.Database.Connection()

	directorySystem := directory.New(conn, runtime.Logger)

	documentsSystem := documents.New(
		conn,
		runtime.Storage,
		runtime.Pagination,
		runtime.Logger,
	)

	notificationsSystem := notifications.New(conn, runtime.Logger)

	workflowSystem := workflow.New(
		workflow.NewPostgresTx(conn),
		runtime.Logger,
	)

	return &Domain{
		Directory:     directorySystem,
		Documents:     documentsSystem,
		Audit:         audit.NewPostgresStore(conn),
		Routing:       routing.NewPostgresStore(conn),
		Notifications: notificationsSystem,
		Workflow:      workflowSystem,
	}
}
