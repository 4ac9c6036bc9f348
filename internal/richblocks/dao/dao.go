// Хранилище значений полей и снимков сессий редактирования.
//
// Основные возможности:
//   - Хранение документа поля в JSONB колонке (PostgreSQL) или в SQLite для локального запуска.
//   - Версионирование значения поля при каждом сохранении.
//   - Снимки открытых сессий редактирования с временем истечения.
package dao

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofrs/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/config"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/blocksjson"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/editor/edtypes"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/gormlogger"
)

var ErrNotFound = errors.New("record not found")

// GenID генерирует уникальный идентификатор в формате UUID.
func GenID() string {
	u2, _ := uuid.NewV4()
	return u2.String()
}

// ValidID проверяет, что строка является UUID.
func ValidID(id string) bool {
	_, err := uuid.FromString(id)
	return err == nil
}

// FieldValue - значение rich-text поля одной записи CMS.
type FieldValue struct {
	ID         string           `json:"id" gorm:"primaryKey;size:36"`
	Collection string           `json:"collection" gorm:"index:idx_field_entry"`
	EntryID    string           `json:"entryId" gorm:"index:idx_field_entry"`
	Field      string           `json:"field" gorm:"index:idx_field_entry"`
	Value      edtypes.Document `json:"value"`
	Version    int              `json:"version"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

func (FieldValue) TableName() string { return "field_values" }

// StringValue возвращает значение в том виде, в котором его хранит CMS: JSON строкой.
func (f *FieldValue) StringValue() (string, error) {
	return blocksjson.SerializeValue(&f.Value)
}

// EditSession - снимок открытой сессии редактирования.
type EditSession struct {
	ID        string           `gorm:"primaryKey;size:36"`
	FieldID   *string          `gorm:"size:36;index"`
	Document  edtypes.Document `gorm:"not null"`
	Selection []byte           `gorm:"default:null"`
	ExpiresAt time.Time        `gorm:"index"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime"`
}

func (EditSession) TableName() string { return "edit_sessions" }

// Open подключается к PostgreSQL по DATABASE_URL, а без него открывает файл SQLite.
// paramQueries скрывает параметры запросов в логе.
func Open(cfg *config.Config, paramQueries bool) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.NewGormLogger(slog.Default(), time.Second*4, paramQueries),
	}

	var dialector gorm.Dialector
	if cfg.DatabaseDSN != "" {
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseDSN,
			PreferSimpleProtocol: false,
		})
	} else {
		slog.Info("DATABASE_URL is empty, use SQLite", "path", cfg.SQLitePath)
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database pool: %w", err)
	}
	if cfg.DatabaseDSN != "" {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
		sqlDB.SetConnMaxIdleTime(time.Minute * 15)
	} else {
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&FieldValue{}, &EditSession{})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func GetField(db *gorm.DB, id string) (*FieldValue, error) {
	var f FieldValue
	if err := db.Where("id = ?", id).First(&f).Error; err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

// SaveFieldValue записывает документ поля и увеличивает версию. Отсутствующее поле создается.
// Пустые Collection, EntryID и Field не затирают сохраненные.
func SaveFieldValue(db *gorm.DB, f *FieldValue) (*FieldValue, error) {
	var res FieldValue
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", f.ID).First(&res).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			res = *f
			res.Version = 1
			return tx.Create(&res).Error
		case err != nil:
			return err
		}
		res.Value = f.Value
		res.Version++
		if f.Collection != "" {
			res.Collection = f.Collection
		}
		if f.EntryID != "" {
			res.EntryID = f.EntryID
		}
		if f.Field != "" {
			res.Field = f.Field
		}
		return tx.Save(&res).Error
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// SaveSession создает или перезаписывает снимок сессии.
func SaveSession(db *gorm.DB, s *EditSession) error {
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(s).Error
}

func GetSession(db *gorm.DB, id string) (*EditSession, error) {
	var s EditSession
	if err := db.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func DeleteSession(db *gorm.DB, id string) error {
	return db.Where("id = ?", id).Delete(&EditSession{}).Error
}

// DeleteExpiredSessions удаляет снимки, истекшие к моменту now.
func DeleteExpiredSessions(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Where("expires_at < ?", now).Delete(&EditSession{})
	return res.RowsAffected, res.Error
}
