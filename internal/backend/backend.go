// Package backend wires storage, the goals file and the optional event
// publisher into the application services.
package backend

import (
	"errors"
	"fmt"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
	"fintrack/internal/storage/memory"
)

// Backend owns every long-lived resource the server needs.
type Backend struct {
	Store     *storage.SQLiteStore
	Goals     *memory.GoalStore
	Publisher *amqp.Client

	Finance   *services.FinanceService
	Dashboard *services.DashboardService
	Transfer  *services.TransferService
	GoalSvc   *services.GoalService
}

// Open opens the database and goals file and, when configured, connects
// to the broker. A broker that cannot be reached disables publishing
// instead of failing start-up.
func Open(cfg *config.Config, logger *log.Logger) (*Backend, error) {
	store, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	goals, err := memory.NewFromFile(cfg.GoalsFile)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("open goals: %w", err)
	}

	b := &Backend{Store: store, Goals: goals}

	var publisher services.EventPublisher
	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.WithComponent(log.ComponentAMQP).Warn("AMQP unavailable, record events disabled",
				log.FieldError, err)
		} else {
			b.Publisher = client
			publisher = client
			logger.Info("AMQP publisher connected", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	b.Finance = services.NewFinanceService(store.Budgets, store.Expenses, store.Incomes, publisher)
	b.Dashboard = services.NewDashboardService(store.Budgets, store.Expenses, store.Incomes)
	b.Transfer = services.NewTransferService(store.Budgets, store.Expenses, store.Incomes, store, publisher)
	b.GoalSvc = services.NewGoalService(goals, publisher)
	return b, nil
}

// Services returns the set the HTTP server routes into.
func (b *Backend) Services() apphttp.Services {
	return apphttp.Services{
		Finance:   b.Finance,
		Dashboard: b.Dashboard,
		Transfer:  b.Transfer,
		Goals:     b.GoalSvc,
		Store:     b.Store,
	}
}

// Close releases the broker connection and the database.
func (b *Backend) Close() error {
	var errs []error
	if b.Publisher != nil {
		errs = append(errs, b.Publisher.Close())
	}
	errs = append(errs, b.Store.Close())
	return errors.Join(errs...)
}
