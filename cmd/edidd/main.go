// Command edidd serves EDID decoding, the timing calculators and report
// downloads over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"example.com/edidgate/internal/common"
	"example.com/edidgate/internal/report"
	"example.com/edidgate/internal/server"
)

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	addr := flag.String("addr", "", "listen address (overrides config port)")
	readTimeout := flag.Duration("read-timeout", 60*time.Second, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", 60*time.Second, "HTTP write timeout")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := os.MkdirAll(cfg.StorageDir, 0o755); err != nil {
		log.Fatalf("storage dir: %v", err)
	}
	rotator, err := setupLogging(cfg)
	if err != nil {
		log.Fatalf("setup logging: %v", err)
	}
	defer rotator.Close()

	lang, _ := report.ParseLanguage(cfg.Lang)
	opts := server.Options{
		StorageDir: cfg.StorageDir,
		Lang:       lang,
		Metrics:    common.NewMetrics(),
	}
	if cfg.PatchLog != "" {
		opts.PatchLog = common.NewPatchLog(cfg.PatchLog)
	}
	srv, err := server.NewServer(opts)
	if err != nil {
		log.Fatalf("server init: %v", err)
	}
	defer srv.Close()

	listenAddr := fmt.Sprintf(":%d", cfg.Port)
	if *addr != "" {
		listenAddr = *addr
	}
	httpServer := &http.Server{
		Addr:         listenAddr,
		Handler:      server.NewRouter(srv),
		ReadTimeout:  *readTimeout,
		WriteTimeout: *writeTimeout,
	}

	log.Printf("edidd listening on %s (storage %s)", listenAddr, cfg.StorageDir)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("edidd stopped")
}
