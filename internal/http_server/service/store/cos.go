// Package store
package store

import (
	"bytes"
	"context"
	"fmt"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/log"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/service"
	"github.com/tencentyun/cos-go-sdk-v5"
	"net/http"
	"net/url"
	"path"
	"strings"
)

type TencentCosStoreService struct {
	logger     log.LoggerInterface
	localStore StoreServiceInterface
	config     *config.ExportStoreConfig
	endpoint   *url.URL
	client     *cos.Client
}

func NewTencentCosStoreService(
	logger log.LoggerInterface,
	config *config.ExportStoreConfig,
	localStore StoreServiceInterface,
) *TencentCosStoreService {
	service := &TencentCosStoreService{logger: logger, localStore: localStore, config: config}
	bucketUrl, _ := url.Parse(fmt.Sprintf("https://%s.cos.%s.myqcloud.com", config.Bucket, strings.ToLower(config.Region)))
	serviceUrl, _ := url.Parse(fmt.Sprintf("https://cos.%s.myqcloud.com", strings.ToLower(config.Region)))
	baseUrl := &cos.BaseURL{BucketURL: bucketUrl, ServiceURL: serviceUrl}
	service.client = cos.NewClient(baseUrl, &http.Client{
		Timeout: uploadTimeout,
		Transport: &cos.AuthorizationTransport{
			SecretID:  config.AccessId,
			SecretKey: config.AccessKey,
		},
	})
	if config.CdnDomain != "" {
		service.endpoint, _ = url.Parse(config.CdnDomain)
	} else {
		service.endpoint = service.client.BaseURL.BucketURL
	}
	return service
}

func (store *TencentCosStoreService) SaveSnapshot(storeInfo *StoreInfo) *ApiStatus {
	if res := store.localStore.SaveSnapshot(storeInfo); res != nil {
		return res
	}

	storeInfo.RemotePath = path.Join(store.config.RemoteStorePath, storeInfo.RemotePath)

	options := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{ContentLength: storeInfo.FileSize},
	}
	_, err := store.client.Object.Put(context.Background(), storeInfo.RemotePath, bytes.NewReader(storeInfo.Content), options)
	if err != nil {
		store.logger.ErrorF("TencentCosStoreService.SaveSnapshot upload snapshot to remote storage error: %v", err)
		return &ErrFileUploadFail
	}
	return nil
}

func (store *TencentCosStoreService) AccessPath(storeInfo *StoreInfo) (string, *ApiStatus) {
	accessUrl, err := url.JoinPath(store.endpoint.String(), storeInfo.RemotePath)
	if err != nil {
		return "", &ErrFilePathFail
	}
	return accessUrl, nil
}
