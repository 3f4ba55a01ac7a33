package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hrconsole/internal/app"
	"hrconsole/internal/config"
	"hrconsole/internal/server"
)

var (
	port      = flag.Int("port", 0, "listen port (config.toml wins when it sets server.port)")
	devMode   = flag.Bool("dev", false, "development mode")
	dataDir   = flag.String("dataDir", "", "data directory (overrides config)")
	configDir = flag.String("config", "", "directory holding config.toml and .env (default: executable directory)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  HR Console")
	fmt.Println("==========================================")

	var (
		cfg  *config.AppConfig
		info config.LoadConfigInfo
		err  error
	)
	if *configDir != "" {
		cfg, info, err = config.LoadConfigFrom(*configDir)
	} else {
		cfg, info, err = config.LoadConfigWithInfo()
	}
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	baseDir := info.Dir
	if baseDir == "" {
		baseDir = "."
	}

	a, err := app.New(cfg, baseDir)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	fmt.Printf("data directory: %s\n", a.DataDir)

	// serve the persisted snapshot right away, then fetch fresh data
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := a.Cache.Open(ctx); err != nil {
		log.Printf("could not load saved data: %v", err)
	}
	go func() {
		if err := a.Cache.Refresh(ctx, true); err != nil {
			log.Printf("initial refresh failed: %v", err)
		}
	}()

	srv := server.NewServer(a)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	go func() {
		fmt.Printf("listening on http://localhost:%d\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	fmt.Println("\nPress Ctrl+C to stop...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nshutting down...")
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
