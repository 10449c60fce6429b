package migrate

import (
	"context"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool
	CreateChecks           bool
	CreateIndexes          bool
	CreateFKsViaSQL        bool
	CreateUpdatedAtTrigger bool
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

func MigrateShopDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("starting shop database migration")

	if opt.CreateExtensions {
		if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("failed to enable pgcrypto", zap.Error(err))
			return err
		}
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&models.Product{},
		&models.Size{},
		&models.ProductSize{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Error("failed to create tables", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		if err := db.WithContext(ctx).Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated
BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_carts_updated ON carts;
CREATE TRIGGER trg_carts_updated
BEFORE UPDATE ON carts
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_products_updated ON products;
CREATE TRIGGER trg_products_updated
BEFORE UPDATE ON products
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("failed to create updated_at triggers", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		checks := []string{
			`ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('pending','paid','canceled'));`,
			`ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_payment_method_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_payment_method_allowed
  CHECK (payment_method IN ('card','paypal'));`,
			`ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_total_amount_non_negative;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_total_amount_non_negative
  CHECK (total_amount >= 0);`,
			// Stock never goes negative; the commit-time conditional UPDATE is
			// the last line of defense and this CHECK backs it up.
			`ALTER TABLE product_sizes
  DROP CONSTRAINT IF EXISTS chk_product_sizes_quantity_non_negative;
ALTER TABLE product_sizes
  ADD CONSTRAINT chk_product_sizes_quantity_non_negative
  CHECK (quantity >= 0);`,
			`ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS chk_cart_items_quantity_gt_zero;
ALTER TABLE cart_items
  ADD CONSTRAINT chk_cart_items_quantity_gt_zero
  CHECK (quantity > 0);`,
			`ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_quantity_gt_zero
  CHECK (quantity > 0);`,
			`ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_unit_price_non_negative;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_unit_price_non_negative
  CHECK (unit_price >= 0);`,
		}
		for _, stmt := range checks {
			if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
				log.Error("failed to create CHECK constraint", zap.Error(err))
				return err
			}
		}
	}

	if opt.CreateIndexes {
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS ux_product_sizes_product_size
ON product_sizes (product_id, size_id);`,
			`CREATE UNIQUE INDEX IF NOT EXISTS ux_cart_items_cart_size
ON cart_items (cart_id, product_size_id);`,
			`CREATE UNIQUE INDEX IF NOT EXISTS ux_orders_payment_intent
ON orders (payment_intent_id);`,
			`CREATE UNIQUE INDEX IF NOT EXISTS ux_orders_public_id
ON orders (public_id);`,
			`CREATE INDEX IF NOT EXISTS ix_orders_user_created
ON orders (user_id, created_at DESC);`,
		}
		for _, stmt := range indexes {
			if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
				log.Error("failed to create index", zap.Error(err))
				return err
			}
		}
	}

	if opt.CreateFKsViaSQL {
		fks := []string{
			`ALTER TABLE product_sizes
  DROP CONSTRAINT IF EXISTS fk_product_sizes_product,
  ADD CONSTRAINT fk_product_sizes_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;`,
			`ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS fk_cart_items_cart,
  ADD CONSTRAINT fk_cart_items_cart
    FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE;`,
			`ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS fk_cart_items_product_size,
  ADD CONSTRAINT fk_cart_items_product_size
    FOREIGN KEY (product_size_id) REFERENCES product_sizes(id) ON DELETE CASCADE;`,
			`ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;`,
		}
		for _, stmt := range fks {
			if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
				log.Error("failed to create foreign key", zap.Error(err))
				return err
			}
		}
	}

	log.Info("shop database migration finished")
	return nil
}
