// Package mcptools 定义会话镜像提供的 MCP 工具名称常量。
package mcptools

//go:generate go run ../../cmd/toolgen -i tools.yml -o tools_gen.go
