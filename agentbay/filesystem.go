package agentbay

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"modernc.org/fileutil"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/internal/mcptools"
)

// DefaultChunkSize 是大文件分块读写的块大小。
const DefaultChunkSize = 60 * 1024

// writeConcurrency 是 WriteFiles 的最大并发数。
const writeConcurrency = 4

// WriteMode 写文件模式。
type WriteMode string

const (
	WriteModeOverwrite WriteMode = "overwrite"
	WriteModeAppend    WriteMode = "append"
)

// FileInfo 是 get_file_info 返回的文件元信息。
type FileInfo struct {
	Name        string
	Path        string
	Size        int64
	IsDirectory bool
	ModTime     string
	Mode        string
	Owner       string
	Group       string
}

// DirectoryEntry 是目录中的一项。
type DirectoryEntry struct {
	Name        string
	IsDirectory bool
}

// FileContentResult 是读取文件的结果。
type FileContentResult struct {
	RequestID string
	Content   string
}

// FileInfoResult 是获取文件信息的结果。
type FileInfoResult struct {
	RequestID string
	FileInfo  *FileInfo
}

// DirectoryListResult 是列出目录的结果。
type DirectoryListResult struct {
	RequestID string
	Entries   []DirectoryEntry
}

// MultipleFileContentResult 是批量读取文件的结果，键为文件路径。
type MultipleFileContentResult struct {
	RequestID string
	Contents  map[string]string
}

// FileSearchResult 是搜索文件的结果。
type FileSearchResult struct {
	RequestID string
	Matches   []string
}

// FileEdit 是一次文本替换。
type FileEdit struct {
	OldText string `json:"oldText"`
	NewText string `json:"newText"`
}

// FileSystem 提供会话内的文件操作。
type FileSystem struct {
	session *Session
}

// CreateDirectory 创建目录（包括缺失的父目录）。
func (fs *FileSystem) CreateDirectory(ctx context.Context, path string) (*OperationResult, error) {
	if path == "" {
		return nil, invalidParameter("path is required")
	}
	result, err := fs.session.callTool(ctx, mcptools.CreateDirectory, map[string]interface{}{"path": path})
	if err != nil {
		return nil, err
	}
	return &OperationResult{RequestID: result.RequestID}, nil
}

// EditFile 依次应用 edits。dryRun 为 true 时只返回差异预览。
func (fs *FileSystem) EditFile(ctx context.Context, path string, edits []FileEdit, dryRun bool) (*FileContentResult, error) {
	if path == "" {
		return nil, invalidParameter("path is required")
	}
	if len(edits) == 0 {
		return nil, invalidParameter("edits cannot be empty")
	}
	result, err := fs.session.callTool(ctx, mcptools.EditFile, map[string]interface{}{
		"path":   path,
		"edits":  edits,
		"dryRun": dryRun,
	})
	if err != nil {
		return nil, err
	}
	return &FileContentResult{RequestID: result.RequestID, Content: result.Data}, nil
}

// GetFileInfo 返回文件或目录的元信息。
func (fs *FileSystem) GetFileInfo(ctx context.Context, path string) (*FileInfoResult, error) {
	if path == "" {
		return nil, invalidParameter("path is required")
	}
	result, err := fs.session.callTool(ctx, mcptools.GetFileInfo, map[string]interface{}{"path": path})
	if err != nil {
		return nil, err
	}
	info := parseFileInfo(result.Data)
	if info.Path == "" {
		info.Path = path
	}
	return &FileInfoResult{RequestID: result.RequestID, FileInfo: info}, nil
}

// parseFileInfo 解析 "key: value" 形式的多行文本。
func parseFileInfo(text string) *FileInfo {
	info := &FileInfo{}
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "name":
			info.Name = value
		case "path":
			info.Path = value
		case "size":
			info.Size, _ = strconv.ParseInt(value, 10, 64)
		case "isdirectory":
			info.IsDirectory = value == "true"
		case "modified":
			info.ModTime = value
		case "permissions", "mode":
			info.Mode = value
		case "owner":
			info.Owner = value
		case "group":
			info.Group = value
		}
	}
	return info
}

// ListDirectory 列出目录内容。
func (fs *FileSystem) ListDirectory(ctx context.Context, path string) (*DirectoryListResult, error) {
	if path == "" {
		return nil, invalidParameter("path is required")
	}
	result, err := fs.session.callTool(ctx, mcptools.ListDirectory, map[string]interface{}{"path": path})
	if err != nil {
		return nil, err
	}
	return &DirectoryListResult{RequestID: result.RequestID, Entries: parseDirectoryListing(result.Data)}, nil
}

// parseDirectoryListing 解析 "[DIR] name" / "[FILE] name" 形式的行。
func parseDirectoryListing(text string) []DirectoryEntry {
	var entries []DirectoryEntry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "[DIR]"):
			entries = append(entries, DirectoryEntry{Name: strings.TrimSpace(strings.TrimPrefix(line, "[DIR]")), IsDirectory: true})
		case strings.HasPrefix(line, "[FILE]"):
			entries = append(entries, DirectoryEntry{Name: strings.TrimSpace(strings.TrimPrefix(line, "[FILE]"))})
		}
	}
	return entries
}

// MoveFile 移动或重命名文件。
func (fs *FileSystem) MoveFile(ctx context.Context, source, destination string) (*OperationResult, error) {
	if source == "" || destination == "" {
		return nil, invalidParameter("source and destination are required")
	}
	result, err := fs.session.callTool(ctx, mcptools.MoveFile, map[string]interface{}{
		"source":      source,
		"destination": destination,
	})
	if err != nil {
		return nil, err
	}
	return &OperationResult{RequestID: result.RequestID}, nil
}

// ReadFile 读取整个文件。
func (fs *FileSystem) ReadFile(ctx context.Context, path string) (*FileContentResult, error) {
	return fs.readFile(ctx, path, 0, 0)
}

func (fs *FileSystem) readFile(ctx context.Context, path string, offset, length int64) (*FileContentResult, error) {
	if path == "" {
		return nil, invalidParameter("path is required")
	}
	if offset < 0 || length < 0 {
		return nil, invalidParameter("offset and length must be >= 0")
	}
	args := map[string]interface{}{"path": path}
	if offset > 0 {
		args["offset"] = offset
	}
	if length > 0 {
		args["length"] = length
	}
	result, err := fs.session.callTool(ctx, mcptools.ReadFile, args)
	if err != nil {
		return nil, err
	}
	return &FileContentResult{RequestID: result.RequestID, Content: result.Data}, nil
}

// ReadMultipleFiles 批量读取文件。
func (fs *FileSystem) ReadMultipleFiles(ctx context.Context, paths []string) (*MultipleFileContentResult, error) {
	if len(paths) == 0 {
		return nil, invalidParameter("paths cannot be empty")
	}
	result, err := fs.session.callTool(ctx, mcptools.ReadMultipleFiles, map[string]interface{}{"paths": paths})
	if err != nil {
		return nil, err
	}
	return &MultipleFileContentResult{RequestID: result.RequestID, Contents: parseMultipleFiles(result.Data)}, nil
}

// parseMultipleFiles 解析以 "\n---\n" 分隔、每段以 "path:" 开头的文本。
func parseMultipleFiles(text string) map[string]string {
	contents := make(map[string]string)
	for _, section := range strings.Split(text, "\n---\n") {
		header, body, ok := strings.Cut(section, "\n")
		if !ok {
			header, body = section, ""
		}
		header = strings.TrimSpace(header)
		if !strings.HasSuffix(header, ":") {
			continue
		}
		contents[strings.TrimSuffix(header, ":")] = body
	}
	return contents
}

// SearchFiles 在 path 下按 pattern 搜索文件，excludePatterns 可为空。
func (fs *FileSystem) SearchFiles(ctx context.Context, path, pattern string, excludePatterns []string) (*FileSearchResult, error) {
	if path == "" || pattern == "" {
		return nil, invalidParameter("path and pattern are required")
	}
	args := map[string]interface{}{"path": path, "pattern": pattern}
	if len(excludePatterns) > 0 {
		args["excludePatterns"] = excludePatterns
	}
	result, err := fs.session.callTool(ctx, mcptools.SearchFiles, args)
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, line := range strings.Split(result.Data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "No matches found" {
			continue
		}
		matches = append(matches, line)
	}
	return &FileSearchResult{RequestID: result.RequestID, Matches: matches}, nil
}

// WriteFile 写入文件。mode 为空时覆盖写。
func (fs *FileSystem) WriteFile(ctx context.Context, path, content string, mode WriteMode) (*OperationResult, error) {
	if path == "" {
		return nil, invalidParameter("path is required")
	}
	if mode == "" {
		mode = WriteModeOverwrite
	}
	if mode != WriteModeOverwrite && mode != WriteModeAppend {
		return nil, invalidParameter("invalid write mode %q, must be %q or %q", mode, WriteModeOverwrite, WriteModeAppend)
	}
	result, err := fs.session.callTool(ctx, mcptools.WriteFile, map[string]interface{}{
		"path":    path,
		"content": content,
		"mode":    string(mode),
	})
	if err != nil {
		return nil, err
	}
	return &OperationResult{RequestID: result.RequestID}, nil
}

// ReadLargeFile 按 chunkSize 分块读取大文件。chunkSize <= 0 时使用 DefaultChunkSize。
func (fs *FileSystem) ReadLargeFile(ctx context.Context, path string, chunkSize int64) (*FileContentResult, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	info, err := fs.GetFileInfo(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("get file info of %s: %w", path, err)
	}
	if info.FileInfo.IsDirectory {
		return nil, invalidParameter("%s is a directory", path)
	}
	size := info.FileInfo.Size
	if size <= chunkSize {
		return fs.readFile(ctx, path, 0, 0)
	}

	var (
		builder   strings.Builder
		requestID = info.RequestID
	)
	builder.Grow(int(size))
	for offset := int64(0); offset < size; offset += chunkSize {
		length := chunkSize
		if offset+length > size {
			length = size - offset
		}
		chunk, err := fs.readFile(ctx, path, offset, length)
		if err != nil {
			return nil, fmt.Errorf("read %s at offset %d: %w", path, offset, err)
		}
		requestID = chunk.RequestID
		builder.WriteString(chunk.Content)
	}
	return &FileContentResult{RequestID: requestID, Content: builder.String()}, nil
}

// WriteLargeFile 按 chunkSize 分块写入大文件：首块覆盖写，其余追加。
func (fs *FileSystem) WriteLargeFile(ctx context.Context, path, content string, chunkSize int) (*OperationResult, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if len(content) <= chunkSize {
		return fs.WriteFile(ctx, path, content, WriteModeOverwrite)
	}

	var result *OperationResult
	for offset, end := 0, 0; offset < len(content); offset = end {
		end = chunkEnd(content, offset, chunkSize)
		mode := WriteModeAppend
		if offset == 0 {
			mode = WriteModeOverwrite
		}
		r, err := fs.WriteFile(ctx, path, content[offset:end], mode)
		if err != nil {
			return nil, fmt.Errorf("write %s at offset %d: %w", path, offset, err)
		}
		result = r
	}
	return result, nil
}

// chunkEnd 返回从 offset 开始不超过 chunkSize 字节的块的结束位置，块不会截断 UTF-8 字符。
// 单个字符长于 chunkSize 时整块包含该字符。
func chunkEnd(content string, offset, chunkSize int) int {
	end := offset + chunkSize
	if end >= len(content) {
		return len(content)
	}
	for end > offset && !utf8.RuneStart(content[end]) {
		end--
	}
	if end == offset {
		_, size := utf8.DecodeRuneInString(content[offset:])
		end = offset + size
	}
	return end
}

// WriteFiles 并发写入多个文件，键为路径。任一失败时返回第一个错误。
func (fs *FileSystem) WriteFiles(ctx context.Context, files map[string]string) (map[string]*OperationResult, error) {
	type written struct {
		path   string
		result *OperationResult
	}
	results := make(chan written, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(writeConcurrency)
	for path, content := range files {
		path, content := path, content
		g.Go(func() error {
			r, err := fs.WriteLargeFile(gctx, path, content, DefaultChunkSize)
			if err != nil {
				return err
			}
			results <- written{path: path, result: r}
			return nil
		})
	}
	err := g.Wait()
	close(results)

	out := make(map[string]*OperationResult, len(files))
	for w := range results {
		out[w.path] = w.result
	}
	return out, err
}

// UploadLocalFile 读取本地文件并写入会话内的 remotePath。
func (fs *FileSystem) UploadLocalFile(ctx context.Context, localPath, remotePath string) (*OperationResult, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err = fileutil.Fadvise(file, 0, 0, fileutil.POSIX_FADV_SEQUENTIAL); err != nil {
		fs.session.client.logger.Debug("fadvise", "path", localPath, "error", err)
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return fs.WriteLargeFile(ctx, remotePath, string(content), DefaultChunkSize)
}
