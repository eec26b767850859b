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

	"golang.org/x/crypto/bcrypt"

	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/billing"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/cache"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/config"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/domain"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/httpapi"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/store"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/store/memory"
	pgstore "github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/store/postgres"
)

func main() {
	cfg := config.Load()
	if err := validateSecurityConfig(cfg); err != nil {
		log.Fatalf("invalid security configuration: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var repo store.Repository
	closers := make([]func() error, 0, 2)

	if cfg.DatabaseURL != "" {
		pg, err := pgstore.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres unavailable (%v) and DATABASE_URL is set; refusing to start with in-memory fallback", err)
		}
		repo = pg
		closers = append(closers, pg.Close)
		log.Println("repository: postgres")
		if err := ensureAdminUser(ctx, pg); err != nil {
			log.Fatalf("seed admin user: %v", err)
		}
	} else {
		repo = memory.NewSeeded()
		log.Println("repository: in-memory")
	}

	dashboardCache := cache.DashboardCache(cache.NoopDashboardCache{})
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisDashboardCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("redis unavailable (%v), using noop cache", err)
		} else {
			dashboardCache = redisCache
			closers = append(closers, redisCache.Close)
			log.Println("cache: redis")
		}
	} else {
		log.Println("cache: noop")
	}

	svc := billing.New(repo, dashboardCache, billing.Config{
		LoyaltyEarnRateCents: cfg.LoyaltyEarnRateCents,
		LowStockThreshold:    cfg.LowStockThreshold,
		TopProductsLimit:     cfg.TopProductsLimit,
		DashboardCacheTTL:    time.Duration(cfg.DashboardCacheTTLSeconds) * time.Second,
	})
	auth := httpapi.NewAuthManager(cfg.AuthSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute, repo)
	api := httpapi.New(svc, auth, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("billing backend listening on %s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}

	log.Println("server stopped")
}

// ensureAdminUser creates the admin account on first boot against an empty
// user table, so a fresh postgres deployment is immediately sign-in-able.
func ensureAdminUser(ctx context.Context, repo store.Repository) error {
	if _, err := repo.GetUserByUsername(ctx, "admin"); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	adminPwd := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPwd == "" {
		adminPwd = "admin123"
		log.Println("[server] WARNING: using default dev admin credentials. Set SEED_ADMIN_PASSWORD to override.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = repo.CreateUser(ctx, domain.User{
		Username: "admin",
		Password: string(hash),
		Name:     "System Admin",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return err
	}
	log.Println("[server] seeded admin user")
	return nil
}

func validateSecurityConfig(cfg config.Config) error {
	if len(cfg.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be set and at least 32 characters")
	}
	if cfg.LoyaltyEarnRateCents < 1 {
		return fmt.Errorf("LOYALTY_EARN_RATE_CENTS must be positive")
	}
	return nil
}
