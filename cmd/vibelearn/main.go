// VibeLearn: Learning Progression MCP Server
//
// Turns AI-assisted coding sessions into spaced-repetition learning: it
// tracks concept mastery, schedules reviews, and gates questions so they
// land when the user has attention to spare.
//
// Usage:
//
//	vibelearn serve          # Start MCP server (stdio transport)
//	vibelearn hook <event>   # Run a host-agent hook (reads stdin)
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/vibelearn/vibelearn/internal/hooks"
	"github.com/vibelearn/vibelearn/internal/learning"
	vlserver "github.com/vibelearn/vibelearn/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "hook":
		if len(os.Args) < 3 {
			fmt.Fprintf(os.Stderr, "Usage: vibelearn hook <track-activity|session-start|check-learning>\n")
			os.Exit(1)
		}
		runHook(os.Args[2], os.Stdin, os.Stdout, os.Stderr)
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("vibelearn v%s\n", vlserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, cleanup, err := vlserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// ServeStdio blocks until stdin closes; an interrupt would otherwise
	// kill the process before the deferred cleanup checkpoints the store.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cleanup()
		os.Exit(0)
	}()

	return server.ServeStdio(s)
}

// runHook dispatches a host-agent hook event. Hooks are best-effort: a
// missing database or malformed stdin must never fail the host, so every
// path exits 0.
func runHook(event string, in io.Reader, out, errw io.Writer) {
	cfg := learning.DefaultConfig()
	h := &hooks.Hooks{Tracker: hooks.NewTrackerStore(cfg.DataDir)}

	// The engine is optional for hooks — without it the tracker still
	// counts activity and the gates stay silent.
	if store, err := learning.New(cfg); err == nil {
		defer store.Close()
		h.Engine = learning.NewEngine(store)
	}

	switch event {
	case "track-activity":
		_ = h.TrackActivity(in)
	case "session-start":
		_ = h.SessionStart(out, errw, stdinIsTerminal())
	case "check-learning":
		_ = h.CheckLearning(out)
	default:
		fmt.Fprintf(errw, "Unknown hook event: %s\n", event)
	}
}

// stdinIsTerminal reports whether stdin is a terminal, meaning the hook
// was invoked by hand rather than by the host agent.
func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `VibeLearn v%s — Learning Progression MCP Server

Usage:
  vibelearn serve                  Start the MCP server (stdio transport)
  vibelearn hook track-activity    PostToolUse hook: count significant work
  vibelearn hook session-start     SessionStart hook: inject review context
  vibelearn hook check-learning    Stop hook: maybe ask a learning question

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "vibelearn": {
        "command": "vibelearn",
        "args": ["serve"]
      }
    }
  }

Data lives in ~/.vibelearn/ (SQLite database plus the activity tracker).
`, vlserver.Version)
}
