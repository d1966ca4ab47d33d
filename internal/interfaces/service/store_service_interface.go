// Package service
package service

import (
	"fmt"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrFilePathFail   = ApiStatus{"FILE_PATH_FAIL", "文件路径生成失败", ServerInternalError}
	ErrFileSaveFail   = ApiStatus{"FILE_SAVE_FAIL", "文件保存失败", ServerInternalError}
	ErrFileUploadFail = ApiStatus{"FILE_UPLOAD_FAIL", "文件上传失败", ServerInternalError}
	ErrFileOverSize   = ApiStatus{"FILE_OVER_SIZE", "文件过大", BadRequest}
)

// StoreInfo 导出快照的存储信息
type StoreInfo struct {
	RootPath   string // 存储根目录
	FilePath   string // 本地文件路径
	FileName   string // 相对根目录的文件名
	RemotePath string // 访问路径, 本地存储时为相对/api的路径, 远程存储时为对象键
	FileSize   int64
	Content    []byte
}

// NewStoreInfo 生成快照文件名: <prefix>/<baseName>_<unix nano><ext>
func NewStoreInfo(storeConfig *config.ExportStoreConfig, baseName, ext string, content []byte) (*StoreInfo, *ApiStatus) {
	if storeConfig.MaxFileSize > 0 && int64(len(content)) > storeConfig.MaxFileSize {
		return nil, &ErrFileOverSize
	}
	if strings.ContainsAny(baseName, `/\`) {
		return nil, &ErrFilePathFail
	}
	fileName := filepath.Join(storeConfig.StorePrefix, fmt.Sprintf("%s_%d%s", baseName, time.Now().UnixNano(), ext))
	return &StoreInfo{
		RootPath:   storeConfig.LocalStorePath,
		FilePath:   filepath.Join(storeConfig.LocalStorePath, fileName),
		FileName:   fileName,
		RemotePath: filepath.ToSlash(fileName),
		FileSize:   int64(len(content)),
		Content:    content,
	}, nil
}

// StoreServiceInterface 快照存储, 远程实现先写本地副本再上传
type StoreServiceInterface interface {
	SaveSnapshot(storeInfo *StoreInfo) *ApiStatus
	// AccessPath 返回客户端可访问的地址
	AccessPath(storeInfo *StoreInfo) (string, *ApiStatus)
}
