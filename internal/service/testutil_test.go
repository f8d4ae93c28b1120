package service

import (
	"fmt"
	"testing"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Product{}, &model.Supplier{}, &model.Client{},
		&model.Purchase{}, &model.PurchaseItem{},
		&model.Sale{}, &model.SaleItem{},
		&model.Order{}, &model.OrderItem{},
		&model.AuditEvent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testAuditor(db *gorm.DB) *Auditor {
	return NewAuditor(repository.NewAuditRepo(db), nil)
}

func seedProduct(t *testing.T, db *gorm.DB, name string, stock int, purchasePrice, salePrice int64) *model.Product {
	t.Helper()
	p := &model.Product{
		SKU:           "SKU-" + name,
		Name:          name,
		Stock:         stock,
		PurchasePrice: purchasePrice,
		SalePrice:     salePrice,
		Status:        model.ProductActive,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) *model.Supplier {
	t.Helper()
	s := &model.Supplier{Name: name}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	return s
}

func seedClient(t *testing.T, db *gorm.DB, name string, status model.ClientStatus) *model.Client {
	t.Helper()
	c := &model.Client{Name: name, Status: status}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return c
}

func productStock(t *testing.T, db *gorm.DB, p *model.Product) int {
	t.Helper()
	var got model.Product
	if err := db.First(&got, "id = ?", p.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return got.Stock
}
