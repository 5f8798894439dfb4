package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pizzeria-app/internal/config"
	"pizzeria-app/internal/models"
)

var passwordRegex = regexp.MustCompile(`(://[^:/@]+:)[^@]+(@)`)

// MaskDSN hides the password portion of a URL-style DSN for logging.
func MaskDSN(dsn string) string {
	return passwordRegex.ReplaceAllString(dsn, "${1}***${2}")
}

// ConnectAndMigrate opens the database (with retries), verifies
// connectivity and brings the schema up to date. With MIGRATIONS=1 the SQL
// files under ./migrations run via golang-migrate; otherwise AutoMigrate
// keeps dev setups working without the migration files present.
func ConnectAndMigrate(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.DatabaseDSN == "" {
		return nil, errors.New("empty database DSN, check the environment configuration")
	}
	gormLevel := gormlogger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		gormLevel = gormlogger.Info
	}
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormLevel)}

	var conn *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		conn, err = gorm.Open(open(cfg), gcfg)
		if err == nil {
			break
		}
		log.Warn("retrying DB connection", zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	log.Info("database connected", zap.String("dsn", MaskDSN(cfg.DatabaseDSN)))

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(cfg.DatabaseDSN); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else if err := AutoMigrate(conn); err != nil {
		return nil, err
	}

	for _, table := range []string{"clientes", "pedidos", "administradores"} {
		if !conn.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		seed(conn)
	}
	return conn, nil
}

func open(cfg config.Config) gorm.Dialector {
	if cfg.DBDriver == "sqlite" {
		return sqlite.Open(cfg.DatabaseDSN)
	}
	return postgres.Open(cfg.DatabaseDSN)
}

// AutoMigrate creates or updates all application tables.
func AutoMigrate(conn *gorm.DB) error {
	toMigrate := []interface{}{
		&models.Customer{}, &models.MenuCategory{}, &models.MenuItem{},
		&models.Order{}, &models.OrderLine{}, &models.LedgerEntry{},
		&models.PizzeriaProfile{}, &models.Administrator{},
	}
	for _, m := range toMigrate {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// seed inserts the base menu categories when missing. Safe to run twice.
func seed(conn *gorm.DB) {
	base := []models.MenuCategory{
		{Name: "Pizzas", Description: "Classic and specialty pizzas"},
		{Name: "Sides", Description: "Garlic bread and extras"},
		{Name: "Drinks"},
		{Name: "Desserts"},
	}
	for _, cat := range base {
		var existing models.MenuCategory
		if err := conn.Where("name = ?", cat.Name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			conn.Create(&cat)
		}
	}
}

// runSQLMigrations executes the files in ./migrations using the
// golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
