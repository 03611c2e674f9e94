package middleware

import "time"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RequestLogger пишет access-лог
type RequestLogger interface {
	Request(requestID, method, path string, status int, latency time.Duration)
}
