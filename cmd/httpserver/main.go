package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Brownie44l1/simple-server/internal/config"
	"github.com/Brownie44l1/simple-server/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		addr       = flag.String("addr", "", "listen address (default 0.0.0.0:3000)")
		root       = flag.String("root", "", "static root that request URIs are checked against")
		document   = flag.String("document", "", "file sent for every accepted request (default index.html)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *addr != "" {
		cfg.Addr = *addr
	}
	if *root != "" {
		cfg.StaticRoot = *root
	}
	if *document != "" {
		cfg.Document = *document
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := server.NewLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting server",
		server.Field{Key: "static_root", Value: cfg.StaticRoot},
		server.Field{Key: "document", Value: cfg.Document},
	)

	srv, err := server.Listen(cfg, logger)
	if err != nil {
		logger.Error("server failed to start", server.Field{Key: "error", Value: err})
		os.Exit(1)
	}
	logger.Info("server started on http://" + srv.Addr().String())

	// runs until the process is killed
	if err := srv.Serve(); err != nil {
		logger.Error("server stopped", server.Field{Key: "error", Value: err})
		os.Exit(1)
	}
}
