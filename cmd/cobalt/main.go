// Command cobalt analyzes a legacy source file, or a whole tree of them,
// and persists each summary as a node in the graph database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/agenthands/cobalt/internal/config"
	"github.com/agenthands/cobalt/internal/core"
	"github.com/agenthands/cobalt/internal/core/oracle"
	"github.com/agenthands/cobalt/internal/graph"
	"github.com/agenthands/cobalt/internal/llm"
)

func main() {
	file := flag.String("f", "", "path to a single code file to analyze")
	dir := flag.String("d", "", "path to a directory tree to analyze")
	cfgPath := flag.String("config", "", "path to a TOML config file (optional)")
	flag.Parse()

	if (*file == "") == (*dir == "") {
		fmt.Fprintln(os.Stderr, "usage: cobalt -f <file> | -d <directory> [-config <path>]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	client, err := graph.FromEnv()
	if err != nil {
		log.Fatalf("Graph configuration error: %v", err)
	}

	ctx := context.Background()

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	analyzer := core.NewAnalyzer(oracle.New(llmClient, cfg.Prompts), client)

	err = client.WithConnection(ctx, func(c *graph.Client) error {
		if *file != "" {
			summary, err := analyzer.AnalyzeFile(ctx, *file)
			if err != nil {
				return err
			}
			fmt.Println(summary)
			return nil
		}

		count, err := analyzer.AnalyzeDirectory(ctx, *dir, cfg.Scan.IgnoreExtensions)
		if err != nil {
			return err
		}
		fmt.Printf("Analyzed %d files (run %s)\n", count, analyzer.RunID)
		return nil
	})
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
}
