// Package config resolves server settings from command-line flags, falling
// back to environment variables.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"git.sr.ht/~jakintosh/todos/internal/todo"
)

const (
	DefaultAddr   = ":8080"
	DefaultDBPath = "todos.db"
)

// Config holds the resolved server settings.
type Config struct {
	// Addr is the listen address of the web server.
	Addr string

	// DBPath is the SQLite file holding the saved list.
	DBPath string

	// Memory keeps the list in process memory only.
	Memory bool

	// IDPolicy selects how new task ids are chosen.
	IDPolicy todo.IDPolicy
}

// Load parses args (without the program name). Flags win over the
// TODOS_* environment variables read through getenv.
func Load(args []string, getenv func(string) string, output io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("todos", flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	addr := fs.String("addr", "", "Listen address (env: TODOS_ADDR, default "+DefaultAddr+")")
	dbPath := fs.String("db", "", "SQLite database path (env: TODOS_DB, default "+DefaultDBPath+")")
	memory := fs.Bool("memory", false, "Keep todos in memory only (env: TODOS_MEMORY)")
	ids := fs.String("ids", "", "Id policy: positional (default) or monotonic (env: TODOS_ID_POLICY)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:   getConfigValue(*addr, getenv("TODOS_ADDR"), DefaultAddr),
		DBPath: getConfigValue(*dbPath, getenv("TODOS_DB"), DefaultDBPath),
		Memory: *memory,
	}

	if !cfg.Memory {
		if v := getenv("TODOS_MEMORY"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("invalid TODOS_MEMORY %q: %w", v, err)
			}
			cfg.Memory = b
		}
	}

	policy, err := todo.ParseIDPolicy(getConfigValue(*ids, getenv("TODOS_ID_POLICY"), ""))
	if err != nil {
		return nil, err
	}
	cfg.IDPolicy = policy

	return cfg, nil
}

// getConfigValue returns the flag value if set, otherwise the env value,
// otherwise def.
func getConfigValue(flagVal, envVal, def string) string {
	if flagVal != "" {
		return flagVal
	}
	if envVal != "" {
		return envVal
	}
	return def
}
