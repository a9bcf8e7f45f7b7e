package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"shipment-tracker/internal/core/config"
	"shipment-tracker/internal/core/httpclient"
	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/replay"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// The replayer drives a simulation run: it loads a file of update lines and
// submits one line per interval to the API, optionally resetting the
// shipment store first.
func main() {
	var (
		file      = pflag.String("file", "", "replay file with one update line per row")
		serverURL = pflag.String("server", "http://localhost:8080", "base URL of the shipment-tracker API")
		interval  = pflag.Duration("interval", time.Second, "delay between submitted updates")
		reset     = pflag.Bool("reset", false, "reset the shipment store before replaying")
	)
	pflag.Parse()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	if *file == "" {
		l.Fatal("--file is required")
	}

	src, err := replay.LoadFile(*file)
	if err != nil {
		l.Fatal("Failed to load replay file", zap.Error(err))
	}

	client := httpclient.NewClient(10 * time.Second)
	base := strings.TrimRight(*serverURL, "/")

	if *reset {
		if err := post(client, base+"/simulation/reset", "", ""); err != nil {
			l.Fatal("Failed to reset simulation", zap.Error(err))
		}
		l.Info("Simulation reset")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = replay.Run(ctx, src, *interval, func(line string) error {
		return post(client, base+"/updates", "text/plain", line)
	})
	if err != nil {
		l.Fatal("Replay aborted", zap.Error(err))
	}
}

// post submits a request body and treats any non-2xx response as an error.
func post(client *http.Client, url, contentType, body string) error {
	resp, err := client.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return nil
}
