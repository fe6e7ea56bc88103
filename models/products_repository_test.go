package models

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockGorm opens GORM over a sqlmock connection with a regexp matcher.
func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open gorm over sqlmock")
	return db, mock
}

func TestProductsRepository_CountProducts(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewProductsRepository[Disk](db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "disks" WHERE brand = $1`)).
		WithArgs("AEZ").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))

	total, err := repo.CountProducts(context.Background(), ProductFilters{Brand: "AEZ", Sort: SortPriceAsc})

	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductsRepository_GetFilteredProducts(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewProductsRepository[Disk](db)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "disks" WHERE brand = \$1 ORDER BY "created_at" DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("AEZ", 12, 12).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "brand", "model", "price", "slug", "created_at"}).
			AddRow(13, 1, "AEZ", "Crest", "1450.00", "aez-crest", now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" WHERE "categories"."id" = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).AddRow(1, "Disks", "disks"))

	disks, err := repo.GetFilteredProducts(context.Background(), 12, 12, ProductFilters{Brand: "AEZ"})

	require.NoError(t, err)
	require.Len(t, disks, 1)
	assert.Equal(t, "aez-crest", disks[0].Slug)
	assert.True(t, decimal.RequireFromString("1450").Equal(disks[0].Price))
	assert.Equal(t, "Disks", disks[0].Category.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductsRepository_GetBySlug_NotFound(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewProductsRepository[Tire](db)

	mock.ExpectQuery(`SELECT \* FROM "tires" WHERE slug = \$1`).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	tire, err := repo.GetBySlug(context.Background(), "missing")

	assert.Nil(t, tire)
	assert.ErrorIs(t, err, ErrProductNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductsRepository_Related(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewProductsRepository[Tire](db)

	tire := Tire{Product: Product{ID: 3, Brand: "Michelin"}, Season: SeasonWinter}
	mock.ExpectQuery(`SELECT \* FROM "tires" WHERE brand = \$1 AND season = \$2 AND id <> \$3 ORDER BY "created_at" DESC LIMIT \$4`).
		WithArgs("Michelin", SeasonWinter, 3, 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "brand", "season"}).AddRow(5, "Michelin", "winter"))

	related, err := repo.Related(context.Background(), tire, 4)

	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, uint(5), related[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductsRepository_Facets(t *testing.T) {
	testCases := []struct {
		name       string
		run        func(db *gorm.DB) (Facets, error)
		withSeason bool
		minPrice   any
		maxPrice   any
		check      func(t *testing.T, f Facets)
	}{
		{
			name: "Disks without season facet",
			run: func(db *gorm.DB) (Facets, error) {
				return NewProductsRepository[Disk](db).Facets(context.Background())
			},
			minPrice: "100.00",
			maxPrice: "2500.50",
			check: func(t *testing.T, f Facets) {
				assert.Equal(t, []string{"AEZ", "BBS"}, f.Brands)
				assert.Equal(t, []int{16, 17}, f.Diameters)
				assert.Empty(t, f.Seasons)
				assert.True(t, decimal.RequireFromString("100").Equal(f.MinPrice))
				assert.True(t, decimal.RequireFromString("2500.5").Equal(f.MaxPrice))
			},
		},
		{
			name: "Tires with season facet on an empty price range",
			run: func(db *gorm.DB) (Facets, error) {
				return NewProductsRepository[Tire](db).Facets(context.Background())
			},
			withSeason: true,
			check: func(t *testing.T, f Facets) {
				assert.Equal(t, []Season{SeasonSummer, SeasonWinter}, f.Seasons)
				assert.True(t, f.MinPrice.IsZero())
				assert.True(t, f.MaxPrice.IsZero())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			db, mock := newMockGorm(t)
			mock.ExpectQuery(`SELECT DISTINCT .?brand.? FROM`).
				WillReturnRows(sqlmock.NewRows([]string{"brand"}).AddRow("AEZ").AddRow("BBS"))
			mock.ExpectQuery(`SELECT DISTINCT .?diameter.? FROM`).
				WillReturnRows(sqlmock.NewRows([]string{"diameter"}).AddRow(16).AddRow(17))
			if tc.withSeason {
				mock.ExpectQuery(`SELECT DISTINCT .?season.? FROM "tires"`).
					WillReturnRows(sqlmock.NewRows([]string{"season"}).AddRow("summer").AddRow("winter"))
			}
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT MIN(price) AS min_price, MAX(price) AS max_price FROM`)).
				WillReturnRows(sqlmock.NewRows([]string{"min_price", "max_price"}).AddRow(tc.minPrice, tc.maxPrice))

			// Act
			facets, err := tc.run(db)

			// Assert
			require.NoError(t, err)
			tc.check(t, facets)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductsRepository_Create(t *testing.T) {
	testCases := []struct {
		name        string
		dbErr       error
		expectedErr error
	}{
		{
			name: "Success",
		},
		{
			name:        "Duplicate slug",
			dbErr:       &pq.Error{Code: "23505", Constraint: "idx_disks_slug"},
			expectedErr: ErrSlugExists,
		},
		{
			name:        "Duplicate article",
			dbErr:       &pq.Error{Code: "23505", Constraint: "idx_disks_article"},
			expectedErr: ErrArticleExists,
		},
		{
			name:        "Unknown category",
			dbErr:       &pq.Error{Code: "23503", Constraint: "fk_disks_category"},
			expectedErr: ErrCategoryNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			db, mock := newMockGorm(t)
			repo := NewProductsRepository[Disk](db)
			disk := &Disk{
				Product: Product{CategoryID: 1, Brand: "AEZ", Model: "Crest", Diameter: 17, Price: decimal.NewFromInt(1450), Article: "AEZ-CR-17"},
				Width:   7,
				PCD:     "5x112",
				DIA:     decimal.RequireFromString("66.6"),
			}
			expect := mock.ExpectQuery(`INSERT INTO "disks"`)
			if tc.dbErr != nil {
				expect.WillReturnError(tc.dbErr)
			} else {
				expect.WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
			}

			// Act
			err := repo.Create(context.Background(), disk)

			// Assert
			assert.Equal(t, "aez-crest", disk.Slug, "slug is derived before insert")
			if tc.expectedErr != nil {
				assert.True(t, errors.Is(err, tc.expectedErr), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(9), disk.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
