// Package store
package store

import (
	"bytes"
	"context"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/service"
	"net/url"
	"path"
	"strings"
	"time"
)

const uploadTimeout = 30 * time.Second

type ALiYunOssStoreService struct {
	logger     log.LoggerInterface
	localStore StoreServiceInterface
	config     *config.ExportStoreConfig
	endpoint   *url.URL
	client     *oss.Client
}

func NewALiYunOssStoreService(
	logger log.LoggerInterface,
	config *config.ExportStoreConfig,
	localStore StoreServiceInterface,
) *ALiYunOssStoreService {
	service := &ALiYunOssStoreService{logger: logger, localStore: localStore, config: config}
	cfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(credentials.NewStaticCredentialsProvider(config.AccessId, config.AccessKey)).
		WithRegion(config.Region).
		WithUseInternalEndpoint(config.UseInternalUrl)
	service.client = oss.NewClient(cfg)
	if config.CdnDomain != "" {
		service.endpoint, _ = url.Parse(config.CdnDomain)
	} else if cfg.Endpoint != nil {
		service.endpoint, _ = url.Parse(strings.Replace(*cfg.Endpoint, "-internal", "", 1))
	}
	return service
}

func (store *ALiYunOssStoreService) SaveSnapshot(storeInfo *StoreInfo) *ApiStatus {
	if res := store.localStore.SaveSnapshot(storeInfo); res != nil {
		return res
	}

	storeInfo.RemotePath = path.Join(store.config.RemoteStorePath, storeInfo.RemotePath)

	putRequest := &oss.PutObjectRequest{
		Bucket:       oss.Ptr(store.config.Bucket),
		Key:          oss.Ptr(storeInfo.RemotePath),
		StorageClass: oss.StorageClassStandard,
		Body:         bytes.NewReader(storeInfo.Content),
	}

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()
	if _, err := store.client.PutObject(ctx, putRequest); err != nil {
		store.logger.ErrorF("ALiYunOssStoreService.SaveSnapshot upload snapshot to remote storage error: %v", err)
		return &ErrFileUploadFail
	}
	return nil
}

func (store *ALiYunOssStoreService) AccessPath(storeInfo *StoreInfo) (string, *ApiStatus) {
	if store.endpoint == nil {
		return "", &ErrFilePathFail
	}
	accessUrl, err := url.JoinPath(store.endpoint.String(), storeInfo.RemotePath)
	if err != nil {
		return "", &ErrFilePathFail
	}
	return accessUrl, nil
}
