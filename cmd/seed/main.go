// Command seed registers the demo accounts, each with the default
// categories. Newly created accounts also get sample transactions and a
// budget. Accounts that already exist are left alone.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/LeviOP/wealthwise/internal/auth"
	"github.com/LeviOP/wealthwise/internal/config"
	"github.com/LeviOP/wealthwise/internal/log"
	"github.com/LeviOP/wealthwise/internal/models"
	"github.com/LeviOP/wealthwise/internal/service"
	"github.com/LeviOP/wealthwise/internal/storage/backend"
)

var demoUsers = []service.RegisterInput{
	{Email: "admin@example.com", Password: "admin123", FirstName: "Admin", LastName: "User"},
	{Email: "user@example.com", Password: "user123", FirstName: "Regular", LastName: "User"},
}

type options struct {
	samples int
	months  int
	seed    int64
}

func main() {
	var opts options
	flag.IntVar(&opts.samples, "transactions", 25, "sample transactions per new demo user")
	flag.IntVar(&opts.months, "months", 3, "spread sample transactions over this many past months")
	flag.Int64Var(&opts.seed, "seed", 0, "random seed for sample data (0 picks one)")
	flag.Parse()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.New(log.DefaultConfig()).Error("load config", log.FieldError, err)
		os.Exit(1)
	}
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: "seed",
		Output:    os.Stdout,
	})
	reportEnv(logger, envErr)

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("init database", log.FieldError, err)
		os.Exit(1)
	}
	defer store.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err := seed(ctx, service.New(store, tokens, logger), logger, opts); err != nil {
		logger.Error("seed failed", log.FieldError, err)
		store.Close()
		os.Exit(1)
	}
}

// reportEnv notes a missing .env file; the process environment still applies.
func reportEnv(logger *log.Logger, err error) {
	if err != nil {
		logger.Info("no .env file found; relying on existing environment", log.FieldError, err)
	}
}

func seed(ctx context.Context, svc *service.Service, logger *log.Logger, opts options) error {
	faker := gofakeit.New(opts.seed)
	for _, u := range demoUsers {
		res, err := svc.Register(ctx, u)
		switch {
		case errors.Is(err, service.ErrConflict):
			logger.Info("demo user already exists", "email", u.Email)
			continue
		case err != nil:
			return err
		}
		logger.Info("created demo user", "email", u.Email, log.FieldUserID, res.User.ID)

		if err := sampleData(ctx, svc, auth.Authenticated(res.User), faker, opts); err != nil {
			return fmt.Errorf("sample data for %s: %w", u.Email, err)
		}
	}
	return nil
}

// sampleData records random transactions across the user's categories and
// a monthly food budget for the current month.
func sampleData(ctx context.Context, svc *service.Service, id auth.Identity, faker *gofakeit.Faker, opts options) error {
	categories, err := svc.Categories(ctx, id)
	if err != nil {
		return err
	}
	if len(categories) == 0 || opts.samples <= 0 {
		return nil
	}

	now := time.Now().UTC()
	earliest := now.AddDate(0, -opts.months, 0)
	for i := 0; i < opts.samples; i++ {
		c := categories[faker.Number(0, len(categories)-1)]
		ceiling := 250.0
		if c.Type == models.Income {
			ceiling = 3000
		}
		date := faker.DateRange(earliest, now)
		if _, err := svc.CreateTransaction(ctx, id, service.TransactionInput{
			Amount:      decimal.NewFromFloat(faker.Price(5, ceiling)).Round(2),
			Type:        c.Type,
			CategoryID:  c.ID,
			Description: faker.Sentence(3),
			Date:        &date,
		}); err != nil {
			return err
		}
	}

	for _, c := range categories {
		if c.Name != "Food & Dining" {
			continue
		}
		if _, err := svc.CreateBudget(ctx, id, service.BudgetInput{
			CategoryID: c.ID,
			Amount:     decimal.NewFromInt(600),
			Period:     models.Monthly,
		}); err != nil {
			return err
		}
	}
	return nil
}
