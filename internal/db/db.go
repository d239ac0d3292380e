package db

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/dozr/sleeptrack/internal/entry"
	"github.com/dozr/sleeptrack/internal/user"
)

func Connect(dsn string) *gorm.DB {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := gdb.AutoMigrate(&user.User{}, &entry.Entry{}); err != nil {
		log.Fatalf("db automigrate: %v", err)
	}
	return gdb
}
