package agentbay

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
)

// defaultPageSize 是列表接口默认的每页条数。
const defaultPageSize = 10

// deleteConcurrency 是批量删除会话时的最大并发数。
const deleteConcurrency = 8

// Create 创建一个新会话。
// 指定了上下文同步时，会等待下载任务完成后再返回；等待失败只记录日志。
func (c *Client) Create(ctx context.Context, params *CreateSessionParams, opts ...PollOption) (*SessionResult, error) {
	if params == nil {
		params = NewCreateSessionParams()
	}
	if params.Labels != nil {
		if err := validateLabels(params.Labels); err != nil {
			return nil, err
		}
	}
	req, err := params.toAPI()
	if err != nil {
		return nil, err
	}

	resp, err := c.api.CreateMcpSessionWithResponse(ctx, req)
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	data := &envelope.Data
	if data.Success != nil && !*data.Success {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			RequestID:  envelope.RequestID,
			Body:       resp.Body,
			Message:    data.ErrMsg,
		}
	}
	if data.SessionID == "" {
		return nil, &APIError{StatusCode: resp.StatusCode(), RequestID: envelope.RequestID, Body: resp.Body, Message: "session id missing in response"}
	}

	session := newSessionFromCreate(c, params.ImageID, data)
	c.logger.Debug("session created", "session_id", session.sessionID, "request_id", envelope.RequestID)

	if len(req.PersistenceDataList) > 0 {
		if _, err := session.Context().waitForTasks(ctx, SyncModeDownload, nil, opts...); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("wait for context download", "session_id", session.sessionID, "error", err)
		}
	}
	return &SessionResult{RequestID: envelope.RequestID, Session: session}, nil
}

// Get 根据 ID 获取会话。
func (c *Client) Get(ctx context.Context, sessionID string) (*SessionResult, error) {
	if sessionID == "" {
		return nil, invalidParameter("session id is required")
	}
	resp, err := c.api.GetSessionWithResponse(ctx, &apis.GetSessionRequest{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	if envelope.Data.SessionID == "" {
		envelope.Data.SessionID = sessionID
	}
	return &SessionResult{RequestID: envelope.RequestID, Session: newSessionFromGet(c, &envelope.Data)}, nil
}

// List 列出匹配标签的会话的第 page 页（从 1 开始）。
// 服务端按游标分页，到达第 page 页需要依次请求之前的各页。
func (c *Client) List(ctx context.Context, labels map[string]string, page, limit int32) (*SessionListResult, error) {
	if page < 1 {
		return nil, invalidParameter("cannot reach page %d: page number must be >= 1", page)
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	params := &ListSessionParams{Labels: labels, MaxResults: limit}
	for current := int32(1); current < page; current++ {
		result, err := c.ListByLabels(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("cannot reach page %d: %w", page, err)
		}
		if result.NextToken == "" {
			return nil, fmt.Errorf("cannot reach page %d: only %d pages available", page, current)
		}
		params.NextToken = result.NextToken
	}
	return c.ListByLabels(ctx, params)
}

// ListByLabels 按游标列出单页会话。
func (c *Client) ListByLabels(ctx context.Context, params *ListSessionParams) (*SessionListResult, error) {
	if params == nil {
		params = &ListSessionParams{}
	}
	resp, err := c.api.ListSessionWithResponse(ctx, params.toAPI())
	if err != nil {
		return nil, err
	}
	envelope, err := envelopeOf(resp)
	if err != nil {
		return nil, err
	}
	sessions, ids := listedSessionsFromAPI(envelope.Data)
	return &SessionListResult{
		RequestID:  envelope.RequestID,
		SessionIDs: ids,
		Sessions:   sessions,
		NextToken:  derefString(envelope.NextToken),
		MaxResults: derefInt32(envelope.MaxResults),
		TotalCount: derefInt32(envelope.TotalCount),
	}, nil
}

// Delete 释放会话，参见 Session.Delete。
func (c *Client) Delete(ctx context.Context, session *Session, syncContext bool, opts ...PollOption) (*DeleteResult, error) {
	if session == nil {
		return nil, invalidParameter("session cannot be nil")
	}
	return session.Delete(ctx, syncContext, opts...)
}

// DeleteSessions 并发释放多个会话。
// 返回与 sessions 一一对应的结果；任一会话失败时同时返回合并后的错误。
func (c *Client) DeleteSessions(ctx context.Context, sessions []*Session, syncContext bool, opts ...PollOption) ([]*DeleteResult, error) {
	results := make([]*DeleteResult, len(sessions))
	errs := make([]error, len(sessions))

	var g errgroup.Group
	g.SetLimit(deleteConcurrency)
	for i, session := range sessions {
		i, session := i, session
		g.Go(func() error {
			if session == nil {
				errs[i] = invalidParameter("session at index %d is nil", i)
				results[i] = &DeleteResult{Err: errs[i]}
				return nil
			}
			result, err := session.Delete(ctx, syncContext, opts...)
			if err != nil {
				errs[i] = err
				result = &DeleteResult{SessionID: session.sessionID, Err: err}
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()
	return results, errors.Join(errs...)
}
