package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/drishti/internal/asana"
	"github.com/ayusman/drishti/internal/coach"
	"github.com/ayusman/drishti/internal/server"
	"github.com/ayusman/drishti/internal/session"
	"github.com/ayusman/drishti/internal/store"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "", "SQLite database path (default ~/.drishti/drishti.db)")
	staticDir := flag.String("static", "", "directory of static files to serve")
	flag.Parse()

	fmt.Println("Drishti - Real-Time Yoga Coaching Engine")

	path := *dbPath
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dataDir := filepath.Join(homeDir, ".drishti")
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		path = filepath.Join(dataDir, "drishti.db")
	}

	st, err := store.New(path)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	catalog := asana.NewCatalog()
	sessions := session.NewManager(catalog, st, coach.DefaultConfig())
	defer sessions.Shutdown()

	srv := server.New(server.Config{
		StaticDir: *staticDir,
		Store:     st,
		Catalog:   catalog,
		Sessions:  sessions,
	})

	fmt.Printf("Starting server on %s\n", *addr)
	if err := srv.ListenAndServe(*addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
