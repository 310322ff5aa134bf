// Package agentbay 提供 AgentBay 云端会话服务的 Go SDK，用于创建和操作远程执行环境。
//
// AgentBay 为 AI Agent 提供隔离的云端会话，会话内可以执行命令、运行代码、读写文件、
// 操作浏览器、模拟移动端与桌面端交互。会话内的能力以 MCP 工具的形式暴露，
// SDK 将其封装为类型化的方法。
//
// # 核心概念
//
//   - Session: 一个云端执行环境，由镜像（如 linux_latest、browser_latest）决定其能力
//   - Context: 持久化存储卷，可在会话创建时挂载到指定路径，并在会话释放前上传
//   - MCP 工具: 会话内可调用的工具，普通会话经 API 网关转发，VPC 会话直连会话网卡
//
// # 快速开始
//
//	c, err := agentbay.NewClient(&agentbay.Config{
//	    APIKey: os.Getenv("AGENTBAY_API_KEY"),
//	})
//
//	result, err := c.Create(ctx, &agentbay.CreateSessionParams{ImageID: "linux_latest"})
//	s := result.Session
//	defer s.Delete(ctx, false)
//
//	out, err := s.Command().ExecuteCommand(ctx, "uname -a", 0)
//
// # 配置
//
// [Config] 中未设置的字段依次从环境变量 AGENTBAY_API_KEY、AGENTBAY_ENDPOINT、
// AGENTBAY_TIMEOUT_MS 和配置文件（默认 ~/.agentbay/config.toml，profile 由
// AGENTBAY_PROFILE 指定）中读取。
//
// # 会话生命周期
//
//   - [Client.Create]: 创建会话，挂载了上下文时会轮询等待下载完成
//   - [Client.Get] / [Client.NewSession]: 获取已有会话
//   - [Client.List] / [Client.ListByLabels]: 按标签分页列出会话
//   - [Client.Delete] / [Session.Delete]: 释放会话，可选在释放前同步上下文
//   - [Session.SetLabels] / [Session.GetLabels] / [Session.Info] / [Session.GetLink]
//
// # 会话能力
//
//   - [Session.FileSystem]: 文件读写、目录、搜索，大文件自动分块
//   - [Session.Command] / [Session.Code]: 执行 shell 命令和 Python/JavaScript 代码
//   - [Session.Browser]: 初始化浏览器并获取 CDP 地址
//   - [Session.UI] / [Session.Mobile] / [Session.Computer]: 界面元素、触控、键鼠与窗口
//   - [Session.OSS]: 会话内对象存储上传下载
//   - [Session.Context]: 查询和触发上下文同步
//
// # 上下文
//
// [Client.Context] 返回 [ContextService]，用于创建、列出、更新、删除上下文，
// 以及上下文内文件的上传下载链接和列表。
//
// # 错误处理
//
// API 返回的业务错误为 [*APIError]，可用 [IsNotFound] 判断资源不存在。
// 工具执行失败返回 [*ToolError]，参数校验失败的错误包装 [ErrInvalidParameter]。
package agentbay
