//go:build integration

package agentbay

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

// testClient 从环境变量创建集成测试用的客户端。
func testClient(t *testing.T) *Client {
	t.Helper()

	if os.Getenv("AGENTBAY_API_KEY") == "" {
		t.Fatal("需要设置 AGENTBAY_API_KEY 环境变量")
	}
	c, err := NewClient(nil)
	if err != nil {
		t.Fatalf("创建客户端失败: %v", err)
	}
	return c
}

// createTestSession 创建会话并在测试结束时释放。
func createTestSession(t *testing.T, c *Client, params *CreateSessionParams) *Session {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := c.Create(ctx, params)
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	s := result.Session
	t.Logf("会话已创建: %s (requestId=%s)", s.ID(), result.RequestID)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.Delete(ctx, false); err != nil {
			t.Logf("释放会话 %s 失败: %v", s.ID(), err)
		}
	})
	return s
}

func TestIntegrationListSessions(t *testing.T) {
	c := testClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := c.List(ctx, nil, 1, 10)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	t.Logf("共 %d 个会话", result.TotalCount)
	for _, s := range result.Sessions {
		t.Logf("  - %s (status=%s)", s.SessionID, s.Status)
	}
}

func TestIntegrationSessionCommand(t *testing.T) {
	c := testClient(t)
	s := createTestSession(t, c, &CreateSessionParams{
		ImageID: "linux_latest",
		Labels:  map[string]string{"purpose": "integration-test"},
	})
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	out, err := s.Command().ExecuteCommand(ctx, "echo hello", 0)
	if err != nil {
		t.Fatalf("ExecuteCommand 失败: %v", err)
	}
	if !strings.Contains(out.Output, "hello") {
		t.Errorf("输出不符合预期: %q", out.Output)
	}

	labels, err := s.GetLabels(ctx)
	if err != nil {
		t.Fatalf("GetLabels 失败: %v", err)
	}
	if labels.Labels["purpose"] != "integration-test" {
		t.Errorf("标签不符合预期: %v", labels.Labels)
	}
}

func TestIntegrationFileSystem(t *testing.T) {
	c := testClient(t)
	s := createTestSession(t, c, &CreateSessionParams{ImageID: "linux_latest"})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fs := s.FileSystem()
	content := strings.Repeat("agentbay ", 20000)
	if _, err := fs.WriteLargeFile(ctx, "/tmp/integration.txt", content, 0); err != nil {
		t.Fatalf("WriteLargeFile 失败: %v", err)
	}
	read, err := fs.ReadLargeFile(ctx, "/tmp/integration.txt", 0)
	if err != nil {
		t.Fatalf("ReadLargeFile 失败: %v", err)
	}
	if read.Content != content {
		t.Errorf("读回内容长度 %d，期望 %d", len(read.Content), len(content))
	}
}

func TestIntegrationContextLifecycle(t *testing.T) {
	c := testClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	name := fmt.Sprintf("integration-%d", time.Now().UnixNano())
	created, err := c.Context().Create(ctx, name)
	if err != nil {
		t.Fatalf("Context.Create 失败: %v", err)
	}
	t.Logf("上下文已创建: %s", created.ContextID)

	got, err := c.Context().Get(ctx, name, false)
	if err != nil {
		t.Fatalf("Context.Get 失败: %v", err)
	}
	if got.ContextID != created.ContextID {
		t.Errorf("上下文 ID 不一致: %s != %s", got.ContextID, created.ContextID)
	}
	if _, err := c.Context().Delete(ctx, got.Context); err != nil {
		t.Fatalf("Context.Delete 失败: %v", err)
	}
}
