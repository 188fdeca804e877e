package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	pgmodels "github.com/MichalMitros/supplier-feed-sync/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"

	_ "github.com/lib/pq"
)

// Open opens connection to DB.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// BeginTx begins DB transaction. Returns function to roll it back.
func BeginTx(t *testing.T, db *sql.DB) (*sql.Tx, func()) {
	t.Helper()

	tx, err := db.Begin()
	if err != nil {
		t.Fatal("begin transaction", err)
	}

	rollback := func() {
		if err := tx.Rollback(); err != nil {
			t.Fatal("can't rollback transaction", err)
		}
	}

	return tx, rollback
}

// InsertProducts is a helper test function to insert products with their ids.
func InsertProducts(t *testing.T, exc qrm.Executable, products ...pgmodels.Product) {
	t.Helper()

	if len(products) == 0 {
		return
	}

	_, err := table.Product.INSERT(table.Product.AllColumns).MODELS(products).Exec(exc)
	if err != nil {
		t.Fatal("can't insert products", err)
	}
}

// InsertTerms is a helper test function to insert terms with their ids.
func InsertTerms(t *testing.T, exc qrm.Executable, terms ...pgmodels.Term) {
	t.Helper()

	if len(terms) == 0 {
		return
	}

	_, err := table.Term.INSERT(table.Term.AllColumns).MODELS(terms).Exec(exc)
	if err != nil {
		t.Fatal("can't insert terms", err)
	}
}

// SetCursor is a helper test function to overwrite sync cursor row.
func SetCursor(t *testing.T, exc qrm.Executable, cursor pgmodels.SyncCursor) {
	t.Helper()

	_, err := table.SyncCursor.UPDATE(table.SyncCursor.MutableColumns).
		MODEL(cursor).
		WHERE(table.SyncCursor.ID.EQ(pg.Int32(1))).
		Exec(exc)
	if err != nil {
		t.Fatal("can't set sync cursor", err)
	}
}

// GetProducts is a helper test function to get all products ordered by id.
func GetProducts(t *testing.T, queryable qrm.Queryable) []pgmodels.Product {
	t.Helper()

	products := []pgmodels.Product{}
	err := table.Product.SELECT(table.Product.AllColumns).
		WHERE(table.Product.ID.IS_NOT_NULL()).
		ORDER_BY(table.Product.ID.ASC()).
		Query(queryable, &products)
	if err != nil {
		t.Fatal("can't get products", err)
	}

	return products
}

// GetProductTerms is a helper test function to get product terms of taxonomy ordered by position.
func GetProductTerms(t *testing.T, queryable qrm.Queryable, productID int64, taxonomy string) []pgmodels.ProductTerm {
	t.Helper()

	terms := []pgmodels.ProductTerm{}
	err := table.ProductTerm.SELECT(table.ProductTerm.AllColumns).
		WHERE(pg.AND(
			table.ProductTerm.ProductID.EQ(pg.Int64(productID)),
			table.ProductTerm.Taxonomy.EQ(pg.String(taxonomy)),
		)).
		ORDER_BY(table.ProductTerm.Position.ASC()).
		Query(queryable, &terms)
	if err != nil {
		t.Fatal("can't get product terms", err)
	}

	return terms
}

// GetCursor is a helper test function to get sync cursor row.
func GetCursor(t *testing.T, queryable qrm.Queryable) pgmodels.SyncCursor {
	t.Helper()

	var cursor pgmodels.SyncCursor
	err := table.SyncCursor.SELECT(table.SyncCursor.AllColumns).
		WHERE(table.SyncCursor.ID.EQ(pg.Int32(1))).
		Query(queryable, &cursor)
	if err != nil {
		t.Fatal("can't get sync cursor", err)
	}

	return cursor
}

// CleanupData is a helper test function to delete catalog data and reset state rows.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	_, err := table.ProductImage.DELETE().WHERE(table.ProductImage.ProductID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete product images data", err)
	}

	_, err = table.ProductTerm.DELETE().WHERE(table.ProductTerm.ProductID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete product terms data", err)
	}

	_, err = table.Product.DELETE().WHERE(table.Product.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete products data", err)
	}

	_, err = table.Term.DELETE().WHERE(table.Term.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete terms data", err)
	}

	_, err = table.Attribute.DELETE().WHERE(table.Attribute.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete attributes data", err)
	}

	_, err = table.CleanupSupplierSku.DELETE().WHERE(table.CleanupSupplierSku.Sku.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete supplier skus data", err)
	}

	_, err = table.CleanupDeletionQueue.DELETE().WHERE(table.CleanupDeletionQueue.Position.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete deletion queue data", err)
	}

	SetCursor(t, exc, pgmodels.SyncCursor{})

	_, err = table.CleanupState.UPDATE(table.CleanupState.MutableColumns).
		MODEL(pgmodels.CleanupState{Phase: "none"}).
		WHERE(table.CleanupState.ID.EQ(pg.Int32(1))).
		Exec(exc)
	if err != nil {
		t.Fatal("can't reset cleanup state", err)
	}
}
