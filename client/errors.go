package client

import "errors"

// ErrNotFound 后端返回 404。
// 对任务轮询来说这是终止信号：被删除的任务不会再出现。
var ErrNotFound = errors.New("resource not found")
