package agentbay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/internal/mcptools"
)

// fakeFS 模拟会话内文件系统相关的 MCP 工具。
type fakeFS struct {
	mu    sync.Mutex
	files map[string]string
	calls []string
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: map[string]string{}}
}

func (f *fakeFS) mock() *mockAPI {
	return &mockAPI{
		callMcpToolFn: func(ctx context.Context, body *apis.CallMcpToolRequest) (*apis.CallMcpToolResponse, error) {
			var args map[string]interface{}
			if err := json.Unmarshal([]byte(body.Args), &args); err != nil {
				return nil, err
			}
			text, isError := f.handle(body.Name, args)
			return okResponse("req-"+body.Name, toolData(text, isError)), nil
		},
	}
}

func (f *fakeFS) handle(tool string, args map[string]interface{}) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, tool)

	path, _ := args["path"].(string)
	switch tool {
	case mcptools.WriteFile:
		content, _ := args["content"].(string)
		if args["mode"] == string(WriteModeAppend) {
			f.files[path] += content
		} else {
			f.files[path] = content
		}
		return "ok", false
	case mcptools.ReadFile:
		content, ok := f.files[path]
		if !ok {
			return "no such file: " + path, true
		}
		offset, _ := args["offset"].(float64)
		length, _ := args["length"].(float64)
		if offset > 0 || length > 0 {
			end := int(offset + length)
			if length == 0 || end > len(content) {
				end = len(content)
			}
			content = content[int(offset):end]
		}
		return content, false
	case mcptools.GetFileInfo:
		content, ok := f.files[path]
		if !ok {
			return "no such file: " + path, true
		}
		return fmt.Sprintf("name: %s\nsize: %d\nisDirectory: false\nmodified: 2025-01-01T00:00:00Z\npermissions: -rw-r--r--", filepath.Base(path), len(content)), false
	case mcptools.ListDirectory:
		return "[DIR] sub\n[FILE] a.txt\n[FILE] b.txt", false
	case mcptools.ReadMultipleFiles:
		var sections []string
		for _, p := range args["paths"].([]interface{}) {
			sections = append(sections, p.(string)+":\n"+f.files[p.(string)])
		}
		return strings.Join(sections, "\n---\n"), false
	case mcptools.SearchFiles:
		return "/data/a.txt\n/data/sub/b.txt\n", false
	case mcptools.CreateDirectory, mcptools.MoveFile, mcptools.EditFile:
		return "ok", false
	}
	return "unknown tool " + tool, true
}

func (f *fakeFS) count(tool string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == tool {
			n++
		}
	}
	return n
}

func TestFileSystemWriteRead(t *testing.T) {
	fake := newFakeFS()
	fs := newTestSession(fake.mock()).FileSystem()
	ctx := context.Background()

	_, err := fs.WriteFile(ctx, "/tmp/a.txt", "hello", "")
	require.NoError(t, err)
	_, err = fs.WriteFile(ctx, "/tmp/a.txt", " world", WriteModeAppend)
	require.NoError(t, err)

	result, err := fs.ReadFile(ctx, "/tmp/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", result.Content)
	assert.Equal(t, "req-read_file", result.RequestID)

	_, err = fs.WriteFile(ctx, "/tmp/a.txt", "x", "truncate")
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = fs.ReadFile(ctx, "/tmp/missing")
	var toolErr *ToolError
	assert.True(t, errors.As(err, &toolErr))
}

func TestFileSystemLargeFileChunks(t *testing.T) {
	fake := newFakeFS()
	fs := newTestSession(fake.mock()).FileSystem()
	ctx := context.Background()

	content := strings.Repeat("0123456789", 25)
	_, err := fs.WriteLargeFile(ctx, "/tmp/big.txt", content, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, fake.count(mcptools.WriteFile))
	assert.Equal(t, content, fake.files["/tmp/big.txt"])

	result, err := fs.ReadLargeFile(ctx, "/tmp/big.txt", 100)
	require.NoError(t, err)
	assert.Equal(t, content, result.Content)
	assert.Equal(t, 3, fake.count(mcptools.ReadFile))
}

func TestFileSystemLargeFileKeepsMultiByteText(t *testing.T) {
	fake := newFakeFS()
	fs := newTestSession(fake.mock()).FileSystem()

	content := strings.Repeat("a", DefaultChunkSize-1) + "日本語"
	_, err := fs.WriteLargeFile(context.Background(), "/tmp/cjk.txt", content, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.count(mcptools.WriteFile))
	assert.Equal(t, content, fake.files["/tmp/cjk.txt"])
}

func TestChunkEnd(t *testing.T) {
	content := "ab日本"
	assert.Equal(t, 2, chunkEnd(content, 0, 3))
	assert.Equal(t, 5, chunkEnd(content, 2, 2))
	assert.Equal(t, 8, chunkEnd(content, 5, 100))
	assert.Equal(t, 5, chunkEnd(content, 2, 4))
}

func TestFileSystemLargeFileSmallContent(t *testing.T) {
	fake := newFakeFS()
	fs := newTestSession(fake.mock()).FileSystem()

	_, err := fs.WriteLargeFile(context.Background(), "/tmp/small.txt", "tiny", 0)
	require.NoError(t, err)
	result, err := fs.ReadLargeFile(context.Background(), "/tmp/small.txt", 0)
	require.NoError(t, err)
	assert.Equal(t, "tiny", result.Content)
	assert.Equal(t, 1, fake.count(mcptools.WriteFile))
	assert.Equal(t, 1, fake.count(mcptools.ReadFile))
}

func TestFileSystemWriteFiles(t *testing.T) {
	fake := newFakeFS()
	fs := newTestSession(fake.mock()).FileSystem()

	files := map[string]string{"/a": "1", "/b": "2", "/c": "3", "/d": "4", "/e": "5"}
	results, err := fs.WriteFiles(context.Background(), files)
	require.NoError(t, err)
	assert.Len(t, results, len(files))
	for path, content := range files {
		assert.Equal(t, content, fake.files[path])
	}
}

func TestFileSystemUploadLocalFile(t *testing.T) {
	fake := newFakeFS()
	fs := newTestSession(fake.mock()).FileSystem()

	local := filepath.Join(t.TempDir(), "local.txt")
	require.NoError(t, os.WriteFile(local, []byte("local content"), 0600))

	_, err := fs.UploadLocalFile(context.Background(), local, "/remote/local.txt")
	require.NoError(t, err)
	assert.Equal(t, "local content", fake.files["/remote/local.txt"])

	_, err = fs.UploadLocalFile(context.Background(), filepath.Join(t.TempDir(), "missing"), "/remote/x")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileSystemInfoAndListing(t *testing.T) {
	fake := newFakeFS()
	fake.files["/data/a.txt"] = "abc"
	fs := newTestSession(fake.mock()).FileSystem()
	ctx := context.Background()

	info, err := fs.GetFileInfo(ctx, "/data/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", info.FileInfo.Name)
	assert.Equal(t, "/data/a.txt", info.FileInfo.Path)
	assert.Equal(t, int64(3), info.FileInfo.Size)
	assert.False(t, info.FileInfo.IsDirectory)
	assert.Equal(t, "-rw-r--r--", info.FileInfo.Mode)

	listing, err := fs.ListDirectory(ctx, "/data")
	require.NoError(t, err)
	assert.Equal(t, []DirectoryEntry{{Name: "sub", IsDirectory: true}, {Name: "a.txt"}, {Name: "b.txt"}}, listing.Entries)

	search, err := fs.SearchFiles(ctx, "/data", "*.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/a.txt", "/data/sub/b.txt"}, search.Matches)
}

func TestFileSystemReadMultipleFiles(t *testing.T) {
	fake := newFakeFS()
	fake.files["/a"] = "first"
	fake.files["/b"] = "second\nline"
	fs := newTestSession(fake.mock()).FileSystem()

	result, err := fs.ReadMultipleFiles(context.Background(), []string{"/a", "/b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"/a": "first", "/b": "second\nline"}, result.Contents)

	_, err = fs.ReadMultipleFiles(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestFileSystemArgumentChecks(t *testing.T) {
	fs := newTestSession(&mockAPI{}).FileSystem()
	ctx := context.Background()

	_, err := fs.CreateDirectory(ctx, "")
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = fs.MoveFile(ctx, "/a", "")
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = fs.EditFile(ctx, "/a", nil, false)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = fs.SearchFiles(ctx, "/a", "", nil)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = fs.readFile(ctx, "/a", -1, 0)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestParseMultipleFilesIgnoresMalformed(t *testing.T) {
	contents := parseMultipleFiles("garbage\n---\n/ok:\nbody")
	assert.Equal(t, map[string]string{"/ok": "body"}, contents)
}
