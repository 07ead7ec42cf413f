// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("🔄 Running database auto-migrations...")

	// Parents before children
	models := []interface{}{
		&order.Order{},
		&order.OrderItem{},
	}

	for _, model := range models {
		m.logger.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for the dashboard queries
func (m *Migration) CreateIndexes() error {
	m.logger.Info("🔄 Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_orders_status_date ON orders(status, order_date)",
		"CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order_product ON order_items(order_id, product_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).Warn("⚠️ Failed to create index")
			failCount++
		} else {
			successCount++
		}
	}

	m.logger.Infof("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts demo orders for the dashboard. Existing order
// numbers are skipped, so seeding twice is harmless.
func (m *Migration) SeedInitialData(year int) error {
	m.logger.Info("🌱 Seeding initial data...")

	created := 0
	for _, o := range demoOrders(year) {
		var existing order.Order
		err := m.db.Where("order_number = ?", o.OrderNumber).First(&existing).Error
		if err == nil {
			m.logger.Debugf("⏭️ Order already exists: %s", o.OrderNumber)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check order %s: %w", o.OrderNumber, err)
		}

		if err := m.db.Create(&o).Error; err != nil {
			return fmt.Errorf("failed to seed order %s: %w", o.OrderNumber, err)
		}
		created++
	}

	m.logger.Infof("✅ Initial data seeded successfully (%d orders)", created)
	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	m.logger.Warn("⚠️ WARNING: Dropping all database tables...")

	// Children before parents
	tables := []interface{}{
		&order.OrderItem{},
		&order.Order{},
	}

	for _, table := range tables {
		if err := m.db.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", table, err)
		}
	}

	m.logger.Info("✅ All tables dropped successfully")
	return nil
}

// TableInfo is a row count per table
type TableInfo struct {
	Table   string
	Records int64
}

// GetTableInfo logs and returns record counts for the archive tables
func (m *Migration) GetTableInfo() ([]TableInfo, error) {
	tables := []string{"orders", "order_items"}
	info := make([]TableInfo, 0, len(tables))

	m.logger.Info("📊 Database Tables Information:")
	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		info = append(info, TableInfo{Table: table, Records: count})

		status := "✅"
		if count == 0 {
			status = "📭"
		}
		m.logger.Infof("%s %-25s | %d records", status, table, count)
	}

	return info, nil
}

func demoOrders(year int) []order.Order {
	type line struct {
		id, title string
		price     float64
		qty       int
	}
	type seed struct {
		month  time.Month
		day    int
		status order.OrderStatus
		lines  []line
	}

	seeds := []seed{
		{time.January, 12, order.OrderStatusCompleted, []line{{"demo-chair", "ComfyChair", 120, 2}}},
		{time.February, 3, order.OrderStatusCompleted, []line{{"demo-sofa", "Library Stool Chair", 99, 1}, {"demo-chair", "ComfyChair", 120, 1}}},
		{time.March, 21, order.OrderStatusShipped, []line{{"demo-lamp", "Desk Lamp", 45.5, 3}}},
		{time.May, 8, order.OrderStatusPending, []line{{"demo-chair", "ComfyChair", 120, 1}}},
		{time.June, 30, order.OrderStatusCancelled, []line{{"demo-sofa", "Library Stool Chair", 99, 4}}},
	}

	orders := make([]order.Order, 0, len(seeds))
	for i, s := range seeds {
		date := time.Date(year, s.month, s.day, 12, 0, 0, 0, time.UTC)
		o := order.Order{
			OrderNumber:   fmt.Sprintf("ORD-%s-DEMO%04d", date.Format("20060102"), i+1),
			SessionID:     "demo",
			OrderDate:     date,
			Status:        s.status,
			PaymentMethod: "card",
			Email:         "demo@example.com",
			Phone:         "+1 555 0100",
			ShippingAddress: order.Address{
				Street:  "1 Demo Street",
				City:    "Springfield",
				Country: "US",
			},
		}
		for _, l := range s.lines {
			o.TotalAmount += l.price * float64(l.qty)
			o.Items = append(o.Items, order.OrderItem{
				ProductID: l.id,
				Title:     l.title,
				Price:     l.price,
				Quantity:  l.qty,
			})
		}
		orders = append(orders, o)
	}
	return orders
}
