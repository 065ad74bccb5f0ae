package minio

import (
	"Journaly/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	defaultPresignExpiry = time.Hour
	signerRegion         = "us-east-1"
)

// URLResolver 把对象 key 转成浏览器可访问的地址
type URLResolver struct {
	signer    *minio.Client
	bucket    string
	publicURL string
	usePublic bool
	expiry    time.Duration
}

// NewURLResolver 签名客户端使用外部地址，签名过程不访问网络
func NewURLResolver(cfg config.MinIOConfig) (*URLResolver, error) {
	signer, err := minio.New(cfg.ExternalEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: true,
		Region: signerRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio signer: %w", err)
	}

	expiry := time.Duration(cfg.PresignExpiry) * time.Second
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}
	return &URLResolver{
		signer:    signer,
		bucket:    cfg.MainBucket,
		publicURL: "https://" + strings.TrimSuffix(cfg.ExternalEndpoint, "/"),
		usePublic: cfg.UsePublicLink,
		expiry:    expiry,
	}, nil
}

// ObjectURL 空 key 返回空串，已是完整地址的原样返回
func (s *URLResolver) ObjectURL(objectKey string) string {
	if objectKey == "" {
		return ""
	}
	if strings.HasPrefix(objectKey, "http://") || strings.HasPrefix(objectKey, "https://") {
		return objectKey
	}
	objectKey = strings.TrimPrefix(objectKey, "/")

	if s.usePublic {
		u, err := url.JoinPath(s.publicURL, s.bucket, objectKey)
		if err != nil {
			return ""
		}
		return u
	}

	u, err := s.signer.PresignedGetObject(context.Background(), s.bucket, objectKey, s.expiry, nil)
	if err != nil {
		log.Warn("presign object error", "key", objectKey, "err", err)
		return ""
	}
	return u.String()
}
