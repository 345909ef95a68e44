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
	"gorm.io/gorm"

	"github.com/formgate/formgate/src/intake/config"
	"github.com/formgate/formgate/src/intake/data"
	"github.com/formgate/formgate/src/intake/store"
	"github.com/formgate/formgate/src/intake/types"
	"github.com/formgate/formgate/src/intake/webserver"
)

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(&types.Submission{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)

	rdb := data.MustRedis(cfg.RedisURL)

	router := webserver.New(store.NewMySQL(db), rdb)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("FormGate intake listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutCtx)
}
