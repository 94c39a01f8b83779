package handler

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"

	"campusapi/internal/service"
)

// Routes bundles what RegisterRoutes needs beyond the app itself.
type Routes struct {
	DB        *sql.DB
	Students  service.StudentService
	Documents service.DocumentService
	APIPrefix string
	Info      AppInfo
}

// RegisterRoutes attaches the HTTP routes to app. Fiber is not strict about
// trailing slashes, so "/students" and "/students/" resolve to the same handler.
func RegisterRoutes(app *fiber.App, r Routes) {
	app.Get("/", Root(r.Info))
	app.Get("/health", HealthCheck(r.DB))
	app.Get("/healthz", LivenessProbe())

	prefix := "/" + strings.Trim(r.APIPrefix, "/")
	if prefix == "/" {
		prefix = ""
	}
	api := app.Group(prefix)

	if r.Students != nil {
		students := api.Group("/students")
		students.Get("/", ListStudents(r.Students))
		students.Post("/", CreateStudent(r.Students))
		students.Get("/:id", GetStudent(r.Students))
		students.Put("/:id", UpdateStudent(r.Students))
		students.Delete("/:id", DeleteStudent(r.Students))
	}

	if r.Documents != nil {
		docs := api.Group("/documents")
		docs.Get("/", ListDocuments(r.Documents))
		docs.Get("/search", SearchDocuments(r.Documents))
		docs.Get("/stats", DocumentStats(r.Documents))
		docs.Post("/snapshot", SnapshotDocuments(r.Documents))
		docs.Delete("/source/:filename", DeleteDocumentBySource(r.Documents))
		docs.Delete("/", DeleteAllDocuments(r.Documents))
	}
}
