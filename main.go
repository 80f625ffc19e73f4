package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/task-tracker/modules/api"
	"github.com/example/task-tracker/modules/auth"
	"github.com/example/task-tracker/modules/storage"
	"github.com/example/task-tracker/modules/tasks"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Tracker ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule())    // Independent module (users, tokens)
	app.Register(storage.NewModule()) // Independent module (attachment files)
	app.Register(tasks.NewModule())   // Depends on storage
	app.Register(api.NewModule())     // Depends on auth and tasks

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", port)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/register            - Register a new user")
	log.Println("  POST   /api/login               - Login and get a token")
	log.Println("  GET    /health                  - Health check")
	log.Println("  GET    /uploads/<file>          - Download an attachment")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/users               - List users for assignment")
	log.Println("  GET    /api/tasks               - List tasks (status, category, search filters)")
	log.Println("  POST   /api/tasks               - Create a task")
	log.Println("  GET    /api/tasks/:id           - Get a single task")
	log.Println("  PUT    /api/tasks/:id           - Update a task")
	log.Println("  DELETE /api/tasks/:id           - Delete a task")
	log.Println("  POST   /api/tasks/:id/comments  - Comment on a task")
	log.Println("  POST   /api/tasks/:id/upload    - Attach a file to a task")
	log.Println("  GET    /api/stats               - Task status counts")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
