// Package config
package config

import (
	"errors"
	"fmt"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/global"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	"os"
	"path/filepath"
)

type StoreType int

const (
	LocalStore StoreType = iota
	ALiYunOssStore
	TencentCosStore
)

// ExportStoreConfig 导出快照的存储配置
type ExportStoreConfig struct {
	StoreType       StoreType `json:"store_type"`        // 文件存储类型, 0: 本地存储, 1: 阿里云OSS存储, 2: 腾讯云对象存储
	Region          string    `json:"region"`            // 云存储地域
	Bucket          string    `json:"bucket"`            // 云存储桶名
	AccessId        string    `json:"access_id"`         // 访问id
	AccessKey       string    `json:"access_key"`        // 访问秘钥
	CdnDomain       string    `json:"cdn_domain"`        // 自定义加速域名
	UseInternalUrl  bool      `json:"use_internal_url"`  // 上传使用内部域名
	LocalStorePath  string    `json:"local_store_path"`  // 本地存储路径
	RemoteStorePath string    `json:"remote_store_path"` // 远程存储路径
	StorePrefix     string    `json:"store_prefix"`      // 快照目录
	MaxFileSize     int64     `json:"max_file_size"`
}

func defaultExportStoreConfig() *ExportStoreConfig {
	return &ExportStoreConfig{
		StoreType:      LocalStore,
		LocalStorePath: "exports",
		StorePrefix:    "designs",
		MaxFileSize:    4 * 1024 * 1024,
	}
}

func (config *ExportStoreConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	if config.LocalStorePath == "" {
		return ValidFail(errors.New("invalid json field http_server.store.local_store_path, path cannot be empty"))
	}
	if config.MaxFileSize < 0 {
		return ValidFail(errors.New("invalid json field http_server.store.max_file_size, cannot be negative"))
	}
	snapshotPath := filepath.Join(filepath.Clean(config.LocalStorePath), config.StorePrefix)
	if err := os.MkdirAll(snapshotPath, global.DefaultDirectoryPermission); err != nil {
		return ValidFailWith(fmt.Errorf("error while creating local store path(%s)", snapshotPath), err)
	}
	switch config.StoreType {
	case LocalStore:
		// 本地存储无需额外配置
	case ALiYunOssStore, TencentCosStore:
		if config.Region == "" {
			return ValidFail(errors.New("invalid json field http_server.store.region, region cannot be empty"))
		}
		if config.Bucket == "" {
			return ValidFail(errors.New("invalid json field http_server.store.bucket, bucket cannot be empty"))
		}
		if config.AccessId == "" {
			return ValidFail(errors.New("invalid json field http_server.store.access_id, access_id cannot be empty"))
		}
		if config.AccessKey == "" {
			return ValidFail(errors.New("invalid json field http_server.store.access_key, access_key cannot be empty"))
		}
	default:
		return ValidFail(fmt.Errorf("invalid json field http_server.store.store_type %d, only support 0, 1, 2", config.StoreType))
	}
	return ValidPass()
}
