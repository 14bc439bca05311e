package db

import (
	"log"

	"catalog/config"

	driver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

func Init() {
	var (
		db  *gorm.DB
		err error
	)
	// TranslateError is required so that unique index violations surface
	// as gorm.ErrDuplicatedKey on both drivers
	if config.MYSQL_DSN != "" {
		if _, err = driver.ParseDSN(config.MYSQL_DSN); err != nil {
			log.Fatalf("Invalid MYSQL_DSN: %v", err)
		}
		db, err = gorm.Open(mysql.Open(config.MYSQL_DSN), &gorm.Config{
			PrepareStmt:    true,
			TranslateError: true,
		})
	} else {
		db, err = gorm.Open(sqlite.Open(config.SQLITE_FILE), &gorm.Config{
			TranslateError: true,
		})
	}
	if err != nil || db == nil {
		panic(err)
	}
	Instance = db
}
