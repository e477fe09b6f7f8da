package checks

import (
	"regexp"
	"testing"

	"dat-manager/feature/catalog"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestCheckServerIntegrity_NilDB(t *testing.T) {
	report, err := CheckServerIntegrity(nil, catalog.Catalog{})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckServerIntegrity_NoTableName(t *testing.T) {
	db, _ := setupMockDB(t)
	_, err := CheckServerIntegrity(db, struct{ Name string }{})
	assert.Error(t, err)
}

func TestCheckServerIntegrity_Mismatch(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	rows.AddRow("id", "bigint unsigned", "NO", "PRI", nil, "auto_increment")
	rows.AddRow("name", "int(11)", "NO", "UNI", nil, "") // Expect varchar, give int

	mock.ExpectQuery("SHOW COLUMNS FROM `catalogs`").WillReturnRows(rows)

	report, err := CheckServerIntegrity(db, catalog.Catalog{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "mysql", report.Driver)

	tbl := report.Tables["catalogs"]
	assert.Equal(t, "error", tbl.Status)
	assert.Contains(t, tbl.MissingColumns, "file_name")
	assert.Contains(t, tbl.MissingColumns, "item_count")

	foundMismatch := false
	for _, m := range tbl.TypeMismatches {
		if regexp.MustCompile(`name: expected varchar\(255\), got int\(11\)`).MatchString(m) {
			foundMismatch = true
		}
	}
	assert.True(t, foundMismatch, "Should detect type mismatch for name. Got: %v", tbl.TypeMismatches)
}

func TestCheckServerIntegrity_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS FROM `catalog_items`").WillReturnError(assert.AnError)

	report, err := CheckServerIntegrity(db, catalog.Record{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Len(t, report.Errors, 1)
}

func TestCheckServerIntegrity_Migrated(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Catalog{}, &catalog.Record{}))

	report, err := CheckServerIntegrity(db, catalog.Catalog{}, catalog.Record{})
	require.NoError(t, err)
	assert.True(t, report.Matched, "report: %+v", report)
	assert.Equal(t, "ok", report.Tables["catalog_items"].Status)
}

func TestParseGormTags(t *testing.T) {
	col := parseGormColumn("column:id;primaryKey")
	assert.Equal(t, "id", col)

	col2 := parseGormColumn("primaryKey;column:item_name;type:varchar(100)")
	assert.Equal(t, "item_name", col2)

	typ := parseGormType("column:id;type:int(11)")
	assert.Equal(t, "int(11)", typ)

	typ2 := parseGormType("column:id")
	assert.Equal(t, "", typ2)
}
