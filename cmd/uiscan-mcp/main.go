package main

import (
	"fmt"
	"log"
	"os"

	"github.com/uiscan/uiscan/internal/config"
	"github.com/uiscan/uiscan/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("uiscan-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("uiscan-mcp - MCP server for UI screenshot analysis")
			fmt.Println()
			fmt.Println("Usage: uiscan-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Configuration:")
			fmt.Println("  uiscan.yaml in the working directory overrides the")
			fmt.Println("  detection heuristics (thresholds, tolerances).")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  UISCAN_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Cannot determine working directory: %v", err)
	}
	cfg, err := config.LoadOptional(cwd)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if os.Getenv("UISCAN_LOG_LEVEL") == "debug" {
		log.Printf("uiscan MCP server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
