package agentbay

import (
	"context"
	"fmt"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
)

// Context 是持久化存储上下文。
type Context struct {
	ID         string
	Name       string
	State      string
	CreatedAt  string
	LastUsedAt string
	OsType     string
}

func contextFromAPI(d *apis.ContextData) *Context {
	return &Context{
		ID:         d.ID,
		Name:       d.Name,
		State:      d.State,
		CreatedAt:  d.CreateTime,
		LastUsedAt: d.LastUsedTime,
		OsType:     d.OsType,
	}
}

// ContextResult 是获取单个上下文的结果。
type ContextResult struct {
	RequestID string
	ContextID string
	Context   *Context
}

// ContextListParams 是列出上下文的参数。
type ContextListParams struct {
	MaxResults int32
	NextToken  string
}

// ContextListResult 是列出上下文的结果。
type ContextListResult struct {
	RequestID  string
	Contexts   []*Context
	NextToken  string
	MaxResults int32
	TotalCount int32
}

// FileURLResult 是获取上下文文件访问链接的结果。
type FileURLResult struct {
	RequestID  string
	URL        string
	ExpireTime int64
}

// ContextFile 是上下文中的文件条目。
type ContextFile struct {
	FileID      string
	FileName    string
	FilePath    string
	FileType    string
	GmtCreate   string
	GmtModified string
	Size        int64
	Status      string
}

// ContextFileListResult 是列出上下文文件的结果。
type ContextFileListResult struct {
	RequestID string
	Files     []*ContextFile
	Count     int32
}

// ContextService 管理账号下的持久化上下文。
type ContextService struct {
	client *Client
}

// List 按游标列出上下文。MaxResults 缺省为 10。
func (cs *ContextService) List(ctx context.Context, params *ContextListParams) (*ContextListResult, error) {
	if params == nil {
		params = &ContextListParams{}
	}
	maxResults := params.MaxResults
	if maxResults <= 0 {
		maxResults = defaultPageSize
	}
	req := &apis.ListContextsRequest{MaxResults: &maxResults}
	if params.NextToken != "" {
		req.NextToken = &params.NextToken
	}
	resp, err := cs.client.api.ListContextsWithResponse(ctx, req)
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, err
	}
	contexts := make([]*Context, 0, len(envelope.Data))
	for i := range envelope.Data {
		contexts = append(contexts, contextFromAPI(&envelope.Data[i]))
	}
	return &ContextListResult{
		RequestID:  envelope.RequestID,
		Contexts:   contexts,
		NextToken:  derefString(envelope.NextToken),
		MaxResults: derefInt32(envelope.MaxResults),
		TotalCount: derefInt32(envelope.TotalCount),
	}, nil
}

// Get 按名称获取上下文，create 为 true 时不存在则创建。
func (cs *ContextService) Get(ctx context.Context, name string, create bool) (*ContextResult, error) {
	if name == "" {
		return nil, invalidParameter("context name is required")
	}
	req := &apis.GetContextRequest{Name: &name}
	if create {
		req.AllowCreate = &create
	}
	return cs.get(ctx, req)
}

// GetByID 按 ID 获取上下文。
func (cs *ContextService) GetByID(ctx context.Context, contextID string) (*ContextResult, error) {
	if contextID == "" {
		return nil, invalidParameter("context id is required")
	}
	return cs.get(ctx, &apis.GetContextRequest{ID: &contextID})
}

func (cs *ContextService) get(ctx context.Context, req *apis.GetContextRequest) (*ContextResult, error) {
	resp, err := cs.client.api.GetContextWithResponse(ctx, req)
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, err
	}
	c := contextFromAPI(&envelope.Data)
	return &ContextResult{RequestID: envelope.RequestID, ContextID: c.ID, Context: c}, nil
}

// Create 创建上下文（已存在时返回已有上下文）。
func (cs *ContextService) Create(ctx context.Context, name string) (*ContextResult, error) {
	return cs.Get(ctx, name, true)
}

// Update 修改上下文名称。
func (cs *ContextService) Update(ctx context.Context, c *Context) (*OperationResult, error) {
	if c == nil || c.ID == "" {
		return nil, invalidParameter("context id is required")
	}
	if c.Name == "" {
		return nil, invalidParameter("context name is required")
	}
	resp, err := cs.client.api.ModifyContextWithResponse(ctx, &apis.ModifyContextRequest{ID: c.ID, Name: c.Name})
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, fmt.Errorf("update context %s: %w", c.ID, err)
	}
	return &OperationResult{RequestID: envelope.RequestID}, nil
}

// Delete 删除上下文。
func (cs *ContextService) Delete(ctx context.Context, c *Context) (*OperationResult, error) {
	if c == nil || c.ID == "" {
		return nil, invalidParameter("context id is required")
	}
	resp, err := cs.client.api.DeleteContextWithResponse(ctx, &apis.DeleteContextRequest{ID: c.ID})
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, fmt.Errorf("delete context %s: %w", c.ID, err)
	}
	return &OperationResult{RequestID: envelope.RequestID}, nil
}

// GetFileDownloadURL 返回上下文中文件的预签名下载链接。
func (cs *ContextService) GetFileDownloadURL(ctx context.Context, contextID, filePath string) (*FileURLResult, error) {
	req, err := contextFileRequest(contextID, filePath)
	if err != nil {
		return nil, err
	}
	resp, err := cs.client.api.GetContextFileDownloadURLWithResponse(ctx, req)
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, err
	}
	link := linkResultFromAPI(envelope.RequestID, &envelope.Data)
	return &FileURLResult{RequestID: link.RequestID, URL: link.URL, ExpireTime: link.ExpireTime}, nil
}

// GetFileUploadURL 返回上下文中文件的预签名上传链接。
func (cs *ContextService) GetFileUploadURL(ctx context.Context, contextID, filePath string) (*FileURLResult, error) {
	req, err := contextFileRequest(contextID, filePath)
	if err != nil {
		return nil, err
	}
	resp, err := cs.client.api.GetContextFileUploadURLWithResponse(ctx, req)
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, err
	}
	link := linkResultFromAPI(envelope.RequestID, &envelope.Data)
	return &FileURLResult{RequestID: link.RequestID, URL: link.URL, ExpireTime: link.ExpireTime}, nil
}

// ListFiles 列出上下文中 parentFolderPath 下的文件。page 从 1 开始，pageSize 缺省为 50。
func (cs *ContextService) ListFiles(ctx context.Context, contextID, parentFolderPath string, page, pageSize int32) (*ContextFileListResult, error) {
	if contextID == "" {
		return nil, invalidParameter("context id is required")
	}
	if page < 1 {
		return nil, invalidParameter("page number must be >= 1, got %d", page)
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	resp, err := cs.client.api.DescribeContextFilesWithResponse(ctx, &apis.DescribeContextFilesRequest{
		ContextID:        contextID,
		ParentFolderPath: parentFolderPath,
		PageNumber:       page,
		PageSize:         pageSize,
	})
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, err
	}
	files := make([]*ContextFile, 0, len(envelope.Data))
	for _, f := range envelope.Data {
		files = append(files, &ContextFile{
			FileID:      f.FileID,
			FileName:    f.FileName,
			FilePath:    f.FilePath,
			FileType:    f.FileType,
			GmtCreate:   f.GmtCreate,
			GmtModified: f.GmtModified,
			Size:        f.Size,
			Status:      f.Status,
		})
	}
	count := derefInt32(envelope.Count)
	if envelope.Count == nil {
		count = int32(len(files))
	}
	return &ContextFileListResult{RequestID: envelope.RequestID, Files: files, Count: count}, nil
}

// DeleteFile 删除上下文中的文件。
func (cs *ContextService) DeleteFile(ctx context.Context, contextID, filePath string) (*OperationResult, error) {
	req, err := contextFileRequest(contextID, filePath)
	if err != nil {
		return nil, err
	}
	resp, err := cs.client.api.DeleteContextFileWithResponse(ctx, req)
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, err
	}
	return &OperationResult{RequestID: envelope.RequestID}, nil
}

func contextFileRequest(contextID, filePath string) (*apis.ContextFileRequest, error) {
	if contextID == "" {
		return nil, invalidParameter("context id is required")
	}
	if filePath == "" {
		return nil, invalidParameter("file path is required")
	}
	return &apis.ContextFileRequest{ContextID: contextID, FilePath: filePath}, nil
}
