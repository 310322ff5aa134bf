package agentbay

import (
	"context"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/internal/mcptools"
)

// OSSCredentials 是初始化会话内 OSS 环境所需的凭证。
type OSSCredentials struct {
	AccessKeyID     string `validate:"required"`
	AccessKeySecret string `validate:"required"`
	SecurityToken   string
	Endpoint        string
	Region          string
}

// OSSResult 是 OSS 操作的结果。
type OSSResult struct {
	RequestID string
	Output    string
}

// OSS 提供会话内与对象存储之间的文件传输。
type OSS struct {
	session *Session
}

// EnvInit 在会话内初始化 OSS 凭证。
func (o *OSS) EnvInit(ctx context.Context, creds *OSSCredentials) (*OSSResult, error) {
	if creds == nil {
		return nil, invalidParameter("credentials are required")
	}
	if err := defaultValidator.Validate(creds); err != nil {
		return nil, err
	}
	args := map[string]interface{}{
		"access_key_id":     creds.AccessKeyID,
		"access_key_secret": creds.AccessKeySecret,
		"securityToken":     creds.SecurityToken,
	}
	if creds.Endpoint != "" {
		args["endpoint"] = creds.Endpoint
	}
	if creds.Region != "" {
		args["region"] = creds.Region
	}
	return o.call(ctx, mcptools.OssEnvInit, args)
}

// Upload 使用已初始化的凭证把会话内 path 上传到 bucket/object。
func (o *OSS) Upload(ctx context.Context, bucket, object, path string) (*OSSResult, error) {
	if bucket == "" || object == "" || path == "" {
		return nil, invalidParameter("bucket, object and path are required")
	}
	return o.call(ctx, mcptools.OssUpload, map[string]interface{}{"bucket": bucket, "object": object, "path": path})
}

// UploadAnonymous 通过预签名 URL 上传会话内的 path。
func (o *OSS) UploadAnonymous(ctx context.Context, url, path string) (*OSSResult, error) {
	if url == "" || path == "" {
		return nil, invalidParameter("url and path are required")
	}
	return o.call(ctx, mcptools.OssUploadAnnon, map[string]interface{}{"url": url, "path": path})
}

// Download 使用已初始化的凭证把 bucket/object 下载到会话内 path。
func (o *OSS) Download(ctx context.Context, bucket, object, path string) (*OSSResult, error) {
	if bucket == "" || object == "" || path == "" {
		return nil, invalidParameter("bucket, object and path are required")
	}
	return o.call(ctx, mcptools.OssDownload, map[string]interface{}{"bucket": bucket, "object": object, "path": path})
}

// DownloadAnonymous 通过 URL 下载到会话内 path。
func (o *OSS) DownloadAnonymous(ctx context.Context, url, path string) (*OSSResult, error) {
	if url == "" || path == "" {
		return nil, invalidParameter("url and path are required")
	}
	return o.call(ctx, mcptools.OssDownloadAnnon, map[string]interface{}{"url": url, "path": path})
}

func (o *OSS) call(ctx context.Context, tool string, args map[string]interface{}) (*OSSResult, error) {
	result, err := o.session.callTool(ctx, tool, args)
	if err != nil {
		return nil, err
	}
	return &OSSResult{RequestID: result.RequestID, Output: result.Data}, nil
}
