package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/formgate/formgate/src/gateway/config"
	"github.com/formgate/formgate/src/gateway/intake"
	"github.com/formgate/formgate/src/gateway/webserver"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	client := intake.NewClient(cfg.IntakeURL, cfg.IntakeTimeout)

	router := webserver.New(cfg, client)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("FormGate gateway listening on %s (intake at %s)", cfg.Port, cfg.IntakeURL)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutCtx)
}
