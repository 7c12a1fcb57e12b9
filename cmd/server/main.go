package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"mk-orders/internal/aggregate"
	"mk-orders/internal/configs"
	httpdelivery "mk-orders/internal/delivery/http"
	"mk-orders/internal/delivery/kafka"
	"mk-orders/internal/lifecycle"
	"mk-orders/internal/repository"
	"mk-orders/internal/repository/postgres"
	"mk-orders/internal/service"
	"mk-orders/internal/session"
)

// @title Mount Kiwi orders
// @version 1.0
// @description Wholesale order lifecycle service. Drafts are edited by the customer, submitted, then accepted, packed, completed and shipped by staff. Lifecycle commands are also accepted from kafka and every status change is published back.

// @host localhost:8081
// @basePath /

func main() {
	_ = godotenv.Load()
	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("config load: %s", err)
	}
	logrus.Print("config parsed")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var repo *repository.Repository
	if cfg.UsePostgres() {
		var db *gorm.DB
		db, err = postgres.ConnectDB(cfg.Postgres())
		if err != nil {
			logrus.Fatalf("postgres connect: %s", err)
		}
		defer func() {
			if derr := db.Close(); derr != nil {
				logrus.Errorf("db close: %v", derr)
			}
		}()
		if err := postgres.Migrate(db); err != nil {
			logrus.Fatalf("postgres migrate: %s", err)
		}
		logrus.Print("connected to postgres")
		repo = repository.NewRepository(db, cfg.CacheTTL, cfg.CacheShards)
	} else {
		logrus.Warn("no database configured, orders are kept in memory")
		repo = repository.NewMemoryRepository(cfg.CacheShards)
	}
	defer repo.Close()

	n, err := repo.Warm(ctx)
	if err != nil {
		logrus.Fatalf("warm cache: %s", err)
	}
	logrus.WithField("orders", n).Print("cache warmed")

	live := aggregate.NewLive(repo)
	defer live.Close()

	opts := []service.Option{service.WithLive(live)}
	var pub *kafka.Publisher
	if cfg.KafkaEnabled {
		pub = kafka.NewPublisher(cfg.KafkaBrokersSlice(), cfg.KafkaEventTopic)
		defer func() {
			if cerr := pub.Close(); cerr != nil {
				logrus.Errorf("publisher close: %v", cerr)
			}
		}()
		opts = append(opts, service.WithEvents(pub))
	}

	policy := cfg.Policy()
	svc := service.NewService(repo, lifecycle.NewMachine(policy), opts...)
	sessions := session.NewRegistry(svc, cfg.SaveDebounce, policy)

	h := httpdelivery.NewHandler(svc, httpdelivery.WithSessions(sessions))
	srv := new(httpdelivery.Server)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logrus.Printf("http server started on %s", cfg.HTTPAddr)
		if err := srv.Run(cfg.HTTPAddr, h.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.KafkaEnabled {
		consumer := kafka.NewConsumer(cfg.Consumer(), svc)
		g.Go(func() error {
			defer func() {
				if cerr := consumer.Close(); cerr != nil {
					logrus.Errorf("consumer close: %v", cerr)
				}
			}()
			logrus.Print("kafka subscription started")
			return consumer.Subscribe(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logrus.Print("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := sessions.FlushAll(shutdownCtx); err != nil {
			logrus.Errorf("flush live edits: %s", err)
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logrus.Errorf("service stopped: %s", err)
		return
	}
	logrus.Print("service stopped")
}
