package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ManuelReschke/ShellEconomy/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestApprovalRepositoryApprovedHours(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApprovalRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `project_approvals` WHERE project_id IN")).
		WillReturnRows(sqlmock.NewRows([]string{"project_id", "approved_hours"}).
			AddRow(1, 12.5).
			AddRow(3, 40.0))

	got, err := repo.ApprovedHours(context.Background(), []uint{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, map[uint]float64{1: 12.5, 3: 40}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovalRepositoryApprovedHours_Empty(t *testing.T) {
	db, mock := newMockDB(t)

	got, err := NewApprovalRepository(db).ApprovedHours(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovalRepositoryApprovedHours_Error(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	_, err := NewApprovalRepository(db).ApprovedHours(context.Background(), []uint{1})
	assert.EqualError(t, err, "connection reset")
}

func TestProjectRepositoryGetByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `projects` WHERE user_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "shipped", "viral"}).
			AddRow(1, 7, "Game", true, false).
			AddRow(2, 7, "Website", false, true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `time_links`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "raw_hours", "hours_override"}).
			AddRow(10, 1, 4.5, nil).
			AddRow(11, 2, 3.0, 1.0))

	projects, err := repo.GetByUserID(7)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Game", projects[0].Name)
	require.Len(t, projects[0].Links, 1)
	assert.Nil(t, projects[0].Links[0].HoursOverride)
	require.Len(t, projects[1].Links, 1)
	require.NotNil(t, projects[1].Links[0].HoursOverride)
	assert.Equal(t, 1.0, *projects[1].Links[0].HoursOverride)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepositoryGetByUserIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `projects` WHERE user_id IN")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "shipped", "viral"}).
			AddRow(1, 7, "Game", true, false).
			AddRow(2, 8, "Robot", false, false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `time_links`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "raw_hours", "hours_override"}))

	grouped, err := repo.GetByUserIDs([]uint{7, 8, 9})
	require.NoError(t, err)
	assert.Len(t, grouped, 3)
	assert.Len(t, grouped[7], 1)
	assert.Len(t, grouped[8], 1)
	assert.Contains(t, grouped, uint(9))
	assert.Empty(t, grouped[9])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopItemRepositoryUpdateBasePrice(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `shop_items` SET `base_price`=?")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewShopItemRepository(db).UpdateBasePrice(context.Background(), 4, 81)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopItemRepositoryCreateValidates(t *testing.T) {
	db, mock := newMockDB(t)

	err := NewShopItemRepository(db).Create(&models.ShopItem{Name: "", CostType: "bundle"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingRepositoryGetRateConfig(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingRepository(db, models.DefaultRateConfig())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `settings` WHERE setting_key IN")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "setting_key", "value", "type"}).
			AddRow(1, models.SettingDollarsPerHour, "12.5", "float"))

	cfg, err := repo.GetRateConfig()
	require.NoError(t, err)
	assert.Equal(t, 12.5, cfg.DollarsPerHour)
	assert.Equal(t, models.DefaultRateConfig().PriceRandomMinPercent, cfg.PriceRandomMinPercent)
	assert.Equal(t, models.DefaultRateConfig().PriceRandomMaxPercent, cfg.PriceRandomMaxPercent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingRepositoryGetRateConfig_ReadsEveryCall(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingRepository(db, models.DefaultRateConfig())

	for _, v := range []string{"10", "20"} {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `settings`")).
			WillReturnRows(sqlmock.NewRows([]string{"setting_key", "value"}).AddRow(models.SettingDollarsPerHour, v))
	}

	first, err := repo.GetRateConfig()
	require.NoError(t, err)
	second, err := repo.GetRateConfig()
	require.NoError(t, err)

	assert.Equal(t, 10.0, first.DollarsPerHour)
	assert.Equal(t, 20.0, second.DollarsPerHour)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingRepositorySaveRateConfig(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingRepository(db, models.DefaultRateConfig())

	mock.ExpectBegin()
	for i := 0; i < 3; i++ {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `settings`")).
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}
	mock.ExpectCommit()

	err := repo.SaveRateConfig(models.GlobalRateConfig{DollarsPerHour: 8, PriceRandomMinPercent: 90, PriceRandomMaxPercent: 110})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingRepositorySaveRateConfig_Invalid(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingRepository(db, models.DefaultRateConfig())

	err := repo.SaveRateConfig(models.GlobalRateConfig{DollarsPerHour: 0})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateDefaultsFromEnv(t *testing.T) {
	t.Setenv("DEFAULT_DOLLARS_PER_HOUR", "12.5")
	t.Setenv("DEFAULT_PRICE_RANDOM_MAX_PERCENT", "not-a-number")

	cfg := RateDefaultsFromEnv()
	assert.Equal(t, 12.5, cfg.DollarsPerHour)
	assert.Equal(t, 90.0, cfg.PriceRandomMinPercent)
	assert.Equal(t, 110.0, cfg.PriceRandomMaxPercent)
}
