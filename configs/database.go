package configs

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"kartvizit.link/configs/configslog"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
)

// ConnectDatabase Postgres bağlantısını kurar (singleton).
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	var connErr error
	dbOnce.Do(func() {
		gormCfg := &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
			// Unique index ihlalleri gorm.ErrDuplicatedKey olarak dönsün
			// (slug çakışması Conflict'e çevrilir).
			TranslateError: true,
		}
		conn, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
		if err != nil {
			connErr = err
			return
		}

		sqlDB, err := conn.DB()
		if err != nil {
			connErr = err
			return
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)

		db = conn
		configslog.Log.Info("Veritabanı bağlantısı kuruldu",
			zap.String("host", cfg.DBHost), zap.String("database", cfg.DBName))
	})
	return db, connErr
}

// GetDB kurulmuş veritabanı bağlantısını döndürür.
// ConnectDatabase çağrılmadan kullanılırsa fatal; repository'ler bağlantıyı buradan alır.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.SLog.Fatal("Veritabanı bağlantısı başlatılmadan GetDB çağrıldı")
	}
	return db
}

// SetDB test ortamında bağlantıyı değiştirmek için kullanılır.
func SetDB(conn *gorm.DB) {
	db = conn
}
