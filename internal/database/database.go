// Package database
package database

import (
	"context"
	"fmt"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/global"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/operation"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"time"
)

type DBCloseCallback struct {
	logger log.LoggerInterface
	db     *gorm.DB
}

func NewDBCloseCallback(logger log.LoggerInterface, db *gorm.DB) *DBCloseCallback {
	return &DBCloseCallback{logger: logger, db: db}
}

func (dc *DBCloseCallback) Invoke(_ context.Context) error {
	dc.logger.Info("Closing database connection")
	db, err := dc.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// ConnectDatabase 连接数据库并完成迁移, 返回的回调需注册到Cleaner
func ConnectDatabase(logger log.LoggerInterface, cfg *config.Config, debug bool) (global.Callable, *operation.DatabaseOperations, error) {
	connection := cfg.Database.GetConnection(logger)
	if connection == nil {
		return nil, nil, fmt.Errorf("unsupported database type %s", cfg.Database.DBType)
	}
	db, err := OpenDatabase(logger, connection, cfg.Database, debug)
	if err != nil {
		return nil, nil, err
	}
	logger.InfoF("Database initialized and connection established (%s)", cfg.Database.DBType)
	operations := operation.NewDatabaseOperations(NewDesignOperation(db, cfg.Database.QueryDuration))
	return NewDBCloseCallback(logger, db), operations, nil
}

func OpenDatabase(logger log.LoggerInterface, connection gorm.Dialector, cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	connectionConfig := gorm.Config{
		TranslateError:            true,
		PrepareStmt:               true,
		DefaultTransactionTimeout: 5 * time.Second,
	}

	if debug {
		connectionConfig.Logger = gormLogger.Default.LogMode(gormLogger.Error)
	} else {
		connectionConfig.Logger = gormLogger.Default.LogMode(gormLogger.Silent)
	}

	db, err := gorm.Open(connection, &connectionConfig)
	if err != nil {
		return nil, fmt.Errorf("error occured while connecting to database: %w", err)
	}

	if err = db.Migrator().AutoMigrate(&operation.DesignRecord{}); err != nil {
		return nil, fmt.Errorf("error occured while migrating database: %w", err)
	}

	dbPool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error occured while creating database pool: %w", err)
	}

	maxOpenConnections := max(cfg.ServerMaxConnections*4/5, 1) // 不超过数据库最大连接的80%
	maxIdleConnections := max(maxOpenConnections/5, 1)         // 空闲连接约为最大连接的20%
	if cfg.DBType == config.SQLite {
		// sqlite单写者
		maxOpenConnections, maxIdleConnections = 1, 1
	}

	dbPool.SetMaxIdleConns(maxIdleConnections)
	dbPool.SetMaxOpenConns(maxOpenConnections)
	dbPool.SetConnMaxIdleTime(cfg.ConnectIdleDuration)

	if err = dbPool.Ping(); err != nil {
		return nil, fmt.Errorf("error occured while pinging database: %w", err)
	}
	return db, nil
}
