package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spektr-org/promptchart/engine"
	"github.com/spektr-org/promptchart/mcpserver"
	"github.com/spektr-org/promptchart/resolver"
	"github.com/spektr-org/promptchart/schema"
	"github.com/spektr-org/promptchart/server"
)

// ── serve ──────────────────────────────────────────────────

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if cfg.GinMode != "" {
				gin.SetMode(cfg.GinMode)
			}

			r, err := buildResolver(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, ":"+cfg.Port, server.NewRouter(r))
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (default: $PORT or 3000)")
	return cmd
}

// ── mcp ────────────────────────────────────────────────────

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve chart tools to AI agents over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			r, err := buildResolver(cfg)
			if err != nil {
				return err
			}
			return mcpserver.New(r, version).ServeStdio()
		},
	}
}

// ── datasets ───────────────────────────────────────────────

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "Describe every dataset in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			r, err := buildResolver(cfg)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), schema.FromAdapter(r.Engine().Adapter()), true)
		},
	}
}

// ── query ──────────────────────────────────────────────────

type queryOptions struct {
	prompt     string
	intentPath string
	format     string
	outPath    string
}

func newQueryCmd() *cobra.Command {
	opts := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Resolve one chart request and print it",
		Example: `  promptchart query --prompt "revenue by region" --format pretty
  promptchart query --intent intent.json --format xlsx --out chart.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.prompt, "prompt", "", "Natural language request")
	cmd.Flags().StringVar(&opts.intentPath, "intent", "", "Path to a chart intent JSON file (skips the LLM)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Output format: json, pretty, csv, xlsx")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Write output to file instead of stdout")
	cmd.MarkFlagsOneRequired("prompt", "intent")
	cmd.MarkFlagsMutuallyExclusive("prompt", "intent")
	return cmd
}

func runQuery(cmd *cobra.Command, opts *queryOptions) error {
	format, err := parseOutputFormat(opts.format)
	if err != nil {
		return err
	}
	if format == outputXLSX && opts.outPath == "" {
		return fmt.Errorf("--format xlsx needs --out")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	r, err := buildResolver(cfg)
	if err != nil {
		return err
	}

	var resp engine.ChartResponse
	if opts.intentPath != "" {
		intent, err := readIntent(opts.intentPath)
		if err != nil {
			return err
		}
		resp, err = r.ResolveIntent(intent, "")
		if err != nil {
			return err
		}
	} else {
		resp, err = r.Resolve(cmd.Context(), resolver.Request{Prompt: opts.prompt})
		if err != nil {
			return err
		}
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.outPath != "" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := render(w, format, resp); err != nil {
		return err
	}
	if opts.outPath != "" {
		log.Printf("📄 %s written to %s", format, opts.outPath)
	}
	return nil
}

func readIntent(path string) (engine.ChartIntent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.ChartIntent{}, fmt.Errorf("read intent: %w", err)
	}
	var intent engine.ChartIntent
	if err := json.Unmarshal(data, &intent); err != nil {
		return engine.ChartIntent{}, fmt.Errorf("parse intent %s: %w", path, err)
	}
	return intent, nil
}
