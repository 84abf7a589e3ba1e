package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"

	"git.sr.ht/~jakintosh/todos/internal/config"
	"git.sr.ht/~jakintosh/todos/internal/domain"
	"git.sr.ht/~jakintosh/todos/internal/store"
	"git.sr.ht/~jakintosh/todos/internal/todo"
	"git.sr.ht/~jakintosh/todos/internal/web"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize Store
	var kv domain.KeyValue
	if cfg.Memory {
		kv = store.NewMemoryKV()
	} else {
		sqlite, err := store.NewSQLiteKV(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
		defer sqlite.Close()
		kv = sqlite
	}

	// Load the saved list before serving anything
	todos := todo.New(store.NewAdapter(kv, nil), todo.WithIDPolicy(cfg.IDPolicy))
	if err := todos.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to load todos: %v", err)
	}

	srv, err := web.NewServer(todos, web.ServerOptions{})
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if cfg.Memory {
		log.Printf("Starting server on %s (in-memory, %s ids)...", cfg.Addr, cfg.IDPolicy)
	} else {
		log.Printf("Starting server on %s (%s, %s ids)...", cfg.Addr, cfg.DBPath, cfg.IDPolicy)
	}
	if err := http.ListenAndServe(cfg.Addr, srv); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
