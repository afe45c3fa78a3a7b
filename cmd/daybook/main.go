package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calebriley/daybook/internal/database"
	"github.com/calebriley/daybook/internal/logging"
	"github.com/calebriley/daybook/internal/notify"
	"github.com/calebriley/daybook/internal/server"
	"github.com/calebriley/daybook/internal/store"
)

func main() {
	logger := logging.Setup(os.Getenv("DAYBOOK_LOG_LEVEL"), os.Getenv("DAYBOOK_LOG_FORMAT"))

	port := os.Getenv("DAYBOOK_PORT")
	if port == "" {
		port = "8080"
	}

	var st *store.Store
	switch os.Getenv("DAYBOOK_STORAGE") {
	case "memory":
		st = store.NewMemory()
		logger.Info("using in-memory storage; data is lost on exit")
	default:
		dbPath := os.Getenv("DAYBOOK_DB_PATH")
		if dbPath == "" {
			dbPath = "daybook.db"
		}
		db, err := database.Open(dbPath)
		if err != nil {
			logger.Error("open database", "path", dbPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		st = store.NewSQLite(db)
		logger.Info("using sqlite storage", "path", dbPath)
	}

	pushCfg := notify.Config{
		VAPIDPublicKey:  os.Getenv("DAYBOOK_VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("DAYBOOK_VAPID_PRIVATE_KEY"),
	}
	if pushCfg.VAPIDPublicKey == "" || pushCfg.VAPIDPrivateKey == "" {
		logger.Info("VAPID keys not configured; push delivery disabled")
	}

	srv := server.New(st, pushCfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv.Evaluator().Start(ctx)
	defer srv.Evaluator().Stop()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Daybook running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
