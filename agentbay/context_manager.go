package agentbay

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
)

// SyncMode 上下文同步方向。
type SyncMode string

const (
	SyncModeUpload   SyncMode = "upload"
	SyncModeDownload SyncMode = "download"
)

// 同步任务状态。
const (
	ContextTaskSuccess = "Success"
	ContextTaskFailed  = "Failed"
)

// 等待同步任务结束时的默认轮询参数。
const (
	contextPollInterval    = 1500 * time.Millisecond
	contextPollMaxAttempts = 150
)

// ContextStatusData 是会话内单个上下文同步任务的状态。
type ContextStatusData struct {
	ContextID    string `json:"contextId"`
	Path         string `json:"path"`
	ErrorMessage string `json:"errorMessage"`
	Status       string `json:"status"`
	StartTime    int64  `json:"startTime"`
	FinishTime   int64  `json:"finishTime"`
	TaskType     string `json:"taskType"`
}

// Finished 报告任务是否已结束（成功或失败）。
func (d *ContextStatusData) Finished() bool {
	return d.Status == ContextTaskSuccess || d.Status == ContextTaskFailed
}

// ContextInfoResult 是 ContextManager.Info 的结果。
type ContextInfoResult struct {
	RequestID         string
	ContextStatusData []ContextStatusData
}

// ContextSyncResult 是 ContextManager.Sync 的结果。
type ContextSyncResult struct {
	RequestID string
	// Success 在 SyncAndWait 中表示所有任务都成功结束。
	Success bool
	// Statuses 仅由 SyncAndWait 填充，为最后一次轮询到的任务状态。
	Statuses []ContextStatusData
}

// ContextInfoOption 配置 Info 查询条件。
type ContextInfoOption func(*apis.GetContextInfoRequest)

// WithInfoContextID 只查询指定上下文。
func WithInfoContextID(contextID string) ContextInfoOption {
	return func(r *apis.GetContextInfoRequest) { r.ContextID = &contextID }
}

// WithInfoPath 只查询指定挂载路径。
func WithInfoPath(path string) ContextInfoOption {
	return func(r *apis.GetContextInfoRequest) { r.Path = &path }
}

// WithInfoTaskType 只查询指定类型的任务。
func WithInfoTaskType(taskType string) ContextInfoOption {
	return func(r *apis.GetContextInfoRequest) { r.TaskType = &taskType }
}

// ContextSyncOption 配置 Sync 请求。
type ContextSyncOption func(*apis.SyncContextRequest)

// WithSyncContextID 只同步指定上下文。
func WithSyncContextID(contextID string) ContextSyncOption {
	return func(r *apis.SyncContextRequest) { r.ContextID = &contextID }
}

// WithSyncPath 只同步指定挂载路径。
func WithSyncPath(path string) ContextSyncOption {
	return func(r *apis.SyncContextRequest) { r.Path = &path }
}

// WithSyncMode 设置同步方向。
func WithSyncMode(mode SyncMode) ContextSyncOption {
	return func(r *apis.SyncContextRequest) {
		m := string(mode)
		r.Mode = &m
	}
}

// ContextManager 管理会话内上下文的同步。
type ContextManager struct {
	session *Session
}

// Info 查询会话内上下文同步任务的状态。
func (m *ContextManager) Info(ctx context.Context, opts ...ContextInfoOption) (*ContextInfoResult, error) {
	req := &apis.GetContextInfoRequest{SessionID: m.session.sessionID}
	for _, fn := range opts {
		fn(req)
	}
	resp, err := m.session.client.api.GetContextInfoWithResponse(ctx, req)
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, err
	}
	statuses, err := parseContextStatus(envelope.Data.ContextStatus)
	if err != nil {
		return nil, err
	}
	return &ContextInfoResult{RequestID: envelope.RequestID, ContextStatusData: statuses}, nil
}

// parseContextStatus 解析嵌套的 ContextStatus JSON：
// 外层为 [{"type":"data","data":"<json array>"}]，仅 type=data 的条目携带任务状态。
func parseContextStatus(raw string) ([]ContextStatusData, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var items []struct {
		Type string `json:"type"`
		Data string `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode context status: %w", err)
	}
	var statuses []ContextStatusData
	for _, item := range items {
		if item.Type != "data" || item.Data == "" {
			continue
		}
		var data []ContextStatusData
		if err := json.Unmarshal([]byte(item.Data), &data); err != nil {
			return nil, fmt.Errorf("decode context status data: %w", err)
		}
		statuses = append(statuses, data...)
	}
	return statuses, nil
}

// Sync 触发上下文同步。未指定模式时由服务端决定。
func (m *ContextManager) Sync(ctx context.Context, opts ...ContextSyncOption) (*ContextSyncResult, error) {
	req := &apis.SyncContextRequest{SessionID: m.session.sessionID}
	for _, fn := range opts {
		fn(req)
	}
	if req.Mode != nil {
		mode := SyncMode(strings.ToLower(*req.Mode))
		if mode != SyncModeUpload && mode != SyncModeDownload {
			return nil, invalidParameter("invalid sync mode %q, must be %q or %q", *req.Mode, SyncModeUpload, SyncModeDownload)
		}
		normalized := string(mode)
		req.Mode = &normalized
	}
	resp, err := m.session.client.api.SyncContextWithResponse(ctx, req)
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, err
	}
	return &ContextSyncResult{RequestID: envelope.RequestID, Success: true}, nil
}

// SyncAndWait 触发同步并轮询 Info，直到对应方向的任务全部结束。
// 默认最多轮询 150 次，间隔 1.5 秒，可通过 PollOption 调整。
func (m *ContextManager) SyncAndWait(ctx context.Context, syncOpts []ContextSyncOption, opts ...PollOption) (*ContextSyncResult, error) {
	result, err := m.Sync(ctx, syncOpts...)
	if err != nil {
		return nil, err
	}

	scope := &apis.SyncContextRequest{}
	for _, fn := range syncOpts {
		fn(scope)
	}
	taskType := SyncMode("")
	if scope.Mode != nil {
		taskType = SyncMode(strings.ToLower(*scope.Mode))
	}
	var infoOpts []ContextInfoOption
	if scope.ContextID != nil {
		infoOpts = append(infoOpts, WithInfoContextID(*scope.ContextID))
	}
	if scope.Path != nil {
		infoOpts = append(infoOpts, WithInfoPath(*scope.Path))
	}

	statuses, err := m.waitForTasks(ctx, taskType, infoOpts, opts...)
	if err != nil {
		return result, err
	}
	result.Statuses = statuses
	for i := range statuses {
		if statuses[i].Status == ContextTaskFailed {
			result.Success = false
			m.session.client.logger.Warn("context sync task failed",
				"session_id", m.session.sessionID,
				"context_id", statuses[i].ContextID,
				"path", statuses[i].Path,
				"error", statuses[i].ErrorMessage)
		}
	}
	return result, nil
}

// waitForTasks 轮询直到 taskType 类型（为空时为全部）的任务都已结束。
// infoOpts 限定每次查询的上下文和路径。
func (m *ContextManager) waitForTasks(ctx context.Context, taskType SyncMode, infoOpts []ContextInfoOption, opts ...PollOption) ([]ContextStatusData, error) {
	o := defaultPollOpts(contextPollInterval, contextPollMaxAttempts).apply(opts)
	return pollLoop(ctx, o, func() (bool, []ContextStatusData, error) {
		info, err := m.Info(ctx, infoOpts...)
		if err != nil {
			return false, nil, fmt.Errorf("get context info of session %s: %w", m.session.sessionID, err)
		}
		var matched []ContextStatusData
		for _, status := range info.ContextStatusData {
			if taskType != "" && !strings.EqualFold(status.TaskType, string(taskType)) {
				continue
			}
			matched = append(matched, status)
		}
		for i := range matched {
			if !matched[i].Finished() {
				return false, matched, nil
			}
		}
		return true, matched, nil
	})
}
