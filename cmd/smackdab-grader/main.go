// Smackdab API Grader: MCP server that grades API specification
// documents against shape-specific rule profiles and safely applies
// remediation patches.
//
// Usage:
//
//	smackdab-grader serve    # Start MCP server (stdio transport)
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	graderserver "github.com/SmackdabDevOps/smackdab-api-grader/internal/server"
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
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("smackdab-grader v%s\n", graderserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, cleanup, err := graderserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// MCP owns stdout; anything human-facing goes to stderr.
	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Smackdab API Grader v%s

Usage:
  smackdab-grader serve    Start the MCP server (stdio transport)

Environment:
  SMACKDAB_PROFILES    Path to a YAML catalog of extra grading profiles
                       merged over the built-ins.

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "smackdab-grader": {
        "command": "smackdab-grader",
        "args": ["serve"]
      }
    }
  }
`, graderserver.Version)
}
