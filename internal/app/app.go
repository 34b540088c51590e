package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/you/wifiattend/internal/config"
	httpx "github.com/you/wifiattend/internal/http"
	"github.com/you/wifiattend/internal/http/handlers"
	"github.com/you/wifiattend/internal/infrastructure/database"
	"github.com/you/wifiattend/internal/infrastructure/repositories"
)

const shutdownTimeout = 5 * time.Second

var openStore = database.Open

// NewRecordStore opens and migrates the record store database, seeds it when
// configured, and returns the router serving it
func NewRecordStore(ctx context.Context, cfg *config.Config) (*gin.Engine, *gorm.DB, error) {
	gdb, err := openStore(cfg.StoreDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		closeDB(gdb)
		return nil, nil, err
	}
	if cfg.StoreSeed {
		if err := database.Seed(ctx, gdb, time.Now().UTC().Format(time.DateOnly)); err != nil {
			closeDB(gdb)
			return nil, nil, err
		}
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	recordH := handlers.NewRecordHandlers(repositories.NewRecordRepository(gdb))
	return httpx.BuildRouter(recordH), gdb, nil
}

func closeDB(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// RunRecordStore serves the development record store until ctx is cancelled
func RunRecordStore(ctx context.Context, cfg *config.Config) error {
	r, gdb, err := NewRecordStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB(gdb)

	addr := ":" + cfg.StorePort
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("recordstore: listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("recordstore: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Printf("recordstore: shutting down")
	return srv.Shutdown(shutdownCtx)
}
