package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	catalogdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/domain"
	invoicedomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/domain"
	notificationdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/notification/domain"
	orderdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/domain"
	paymentdomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/payment/domain"
	plandomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan/domain"
	subscriptiondomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

// RunMigrations applies the embedded SQL migrations so a self-hosted install
// is usable out of the box. Postgres only; other dialects go through
// AutoMigrate.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate builds the schema from the models for sqlite and mysql, where
// the versioned postgres migrations do not apply.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}
	return db.AutoMigrate(
		&plandomain.Plan{},
		&subscriptiondomain.Subscription{},
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&catalogdomain.ProductImage{},
		&orderdomain.Customer{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
		&invoicedomain.Invoice{},
		&paymentdomain.PaymentRecord{},
		&notificationdomain.Notification{},
	)
}
