// Package xlog 根据配置构建 slog.Logger。
//
// 支持 text/json 两种格式、运行时动态调整级别（共享 slog.LevelVar），
// 以及基于 lumberjack 的按大小轮转文件输出。
//
//	l, err := xlog.New(xlog.Config{Level: "info", Format: "json", File: "/var/log/xjob.log"})
//	if err != nil {
//	    return err
//	}
//	defer l.Close()
//	l.Info("started")
//	_ = l.SetLevel("debug") // 对所有派生 logger 立即生效
package xlog
