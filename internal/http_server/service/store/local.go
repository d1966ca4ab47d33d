// Package store
package store

import (
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/global"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/service"
	"net/url"
	"os"
	"path/filepath"
)

type LocalStoreService struct {
	logger log.LoggerInterface
	config *config.ExportStoreConfig
}

func NewLocalStoreService(logger log.LoggerInterface, config *config.ExportStoreConfig) *LocalStoreService {
	return &LocalStoreService{
		logger: logger,
		config: config,
	}
}

func (store *LocalStoreService) SaveSnapshot(storeInfo *StoreInfo) *ApiStatus {
	if err := os.MkdirAll(filepath.Dir(storeInfo.FilePath), global.DefaultDirectoryPermission); err != nil {
		store.logger.ErrorF("LocalStoreService.SaveSnapshot create directory error: %v", err)
		return &ErrFileSaveFail
	}
	if err := os.WriteFile(storeInfo.FilePath, storeInfo.Content, global.DefaultFilePermissions); err != nil {
		store.logger.ErrorF("LocalStoreService.SaveSnapshot write file error: %v", err)
		return &ErrFileSaveFail
	}
	return nil
}

// AccessPath 本地快照由/api下的静态文件中间件提供
func (store *LocalStoreService) AccessPath(storeInfo *StoreInfo) (string, *ApiStatus) {
	accessPath, err := url.JoinPath("/api", storeInfo.RemotePath)
	if err != nil {
		return "", &ErrFilePathFail
	}
	return accessPath, nil
}
