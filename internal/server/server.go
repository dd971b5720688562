package server

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/cobalt/internal/config"
	"github.com/agenthands/cobalt/internal/core"
	"github.com/agenthands/cobalt/internal/core/oracle"
	"github.com/agenthands/cobalt/internal/graph"
	"github.com/agenthands/cobalt/internal/llm"
)

type Server struct {
	Analyzer *core.Analyzer
	Graph    *graph.Client
	Ignore   []string
}

// NewServer wires the graph client, LLM client and analyzer from the
// environment and config file, failing fast on anything unusable.
func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using built-in defaults", cfgPath, err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	client, err := graph.FromEnv()
	if err != nil {
		log.Fatalf("Graph configuration error: %v", err)
	}
	if err := client.Connect(context.Background()); err != nil {
		log.Fatalf("Failed to connect to graph: %v", err)
	}

	llmClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	o := oracle.New(llmClient, cfg.Prompts)

	return &Server{
		Analyzer: core.NewAnalyzer(o, client),
		Graph:    client,
		Ignore:   cfg.Scan.IgnoreExtensions,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/analyze", s.Analyze)
	r.GET("/health", s.Health)

	return r
}

type AnalyzeRequest struct {
	Path             string   `json:"path" binding:"required"`
	Directory        bool     `json:"directory"`
	IgnoreExtensions []string `json:"ignore_extensions"`
}

func (s *Server) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ignore := req.IgnoreExtensions
	if len(ignore) == 0 {
		ignore = s.Ignore
	}

	if req.Directory {
		count, err := s.Analyzer.AnalyzeDirectory(c.Request.Context(), req.Path, ignore)
		if err != nil {
			log.Printf("Directory analysis failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "analyzed": count})
			return
		}
		c.JSON(http.StatusOK, gin.H{"analyzed": count, "run_id": s.Analyzer.RunID})
		return
	}

	summary, err := s.Analyzer.AnalyzeFile(c.Request.Context(), req.Path)
	if err != nil {
		log.Printf("Analysis failed for %s: %v", req.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filename": summary.Filename,
		"summary":  summary.Summary,
		"run_id":   s.Analyzer.RunID,
	})
}

func (s *Server) Health(c *gin.Context) {
	if s.Graph.HealthCheck(c.Request.Context()) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
}
