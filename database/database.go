package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"nutriplan-go-worker/models"
	"nutriplan-go-worker/utils"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "modernc.org/sqlite"
)

// Mysql 是 worker 共用的本地快取連線，client 可能是 mysql 或 sqlite
var Mysql *gorm.DB

const (
	ClientMysql  = "mysql"
	ClientSqlite = "sqlite"
)

func InitDatabasePool() {
	if Mysql != nil && Mysql.DB().Ping() == nil {
		return
	}
	db, err := Open(utils.EnvConfig.Database.Client)
	if err != nil {
		panic(err)
	}
	Mysql = db
}

// Open connects with the configured client and migrates the cache tables.
func Open(client string) (*gorm.DB, error) {
	config := utils.EnvConfig.Database

	var db *gorm.DB
	var err error
	switch client {
	case ClientSqlite:
		db, err = OpenSqlite(config.Path)
	case ClientMysql, "":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", config.User, config.Password, config.Host, config.Port, config.Db, config.Params)
		db, err = gorm.Open("mysql", dsn)
	default:
		return nil, fmt.Errorf("unsupported database client %q", client)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", client, err)
	}

	if config.MaxIdle > 0 {
		db.DB().SetMaxIdleConns(int(config.MaxIdle))
	}
	if config.MaxOpenConn > 0 && client != ClientSqlite {
		db.DB().SetMaxOpenConns(int(config.MaxOpenConn))
	}
	if lifeTime, err := time.ParseDuration(config.MaxLifeTime); err == nil && client != ClientSqlite {
		db.DB().SetConnMaxLifetime(lifeTime)
	}
	db.LogMode(config.LogEnable == 1)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenSqlite opens a pure-Go sqlite database through gorm's sqlite3 dialect.
// An empty path means a private in-memory database.
func OpenSqlite(path string) (*gorm.DB, error) {
	if path == "" {
		path = "file::memory:"
	}
	sqlDB, err := sql.Open("sqlite", path+timeFormatParam(path))
	if err != nil {
		return nil, err
	}
	// sqlite 只允許單一寫入者，記憶體資料庫也必須共用同一連線
	sqlDB.SetMaxOpenConns(1)
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		sqlDB.Close()
		return nil, err
	}

	db, err := gorm.Open("sqlite3", sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Meal{},
		&models.Favorite{},
		&models.MealOverride{},
		&models.DailyMenuItem{},
		&models.MealIntake{},
		&models.User{},
		&models.ActivityLog{},
	).Error
}

// 固定時間寫入格式，日期欄位才能以等值比對
func timeFormatParam(path string) string {
	if strings.Contains(path, "?") {
		return "&_time_format=sqlite"
	}
	return "?_time_format=sqlite"
}
