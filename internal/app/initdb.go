package app

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porese500/simulacros/internal/infra/config"
	"github.com/porese500/simulacros/internal/infra/events"
)

// InitDatabase устанавливает подключение к базе данных
func InitDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	const op = "app.InitDatabase"

	connConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(context.Background(), connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := db.Ping(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	log.Println("Database connected successfully!")
	return db, nil
}

// InitPublisher подключается к брокеру событий. Без amqp_url события не публикуются.
func InitPublisher(cfg *config.Config) (events.Publisher, func(), error) {
	const op = "app.InitPublisher"

	if cfg.Events.AMQPURL == "" {
		log.Println("Events publisher disabled: amqp_url is empty")
		return events.NopPublisher{}, func() {}, nil
	}

	publisher, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Printf("Events publisher connected, exchange %q", cfg.Events.Exchange)
	return publisher, publisher.Close, nil
}
