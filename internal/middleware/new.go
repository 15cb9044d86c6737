package middleware

import (
	"analytics-srv/pkg/log"
)

type Middleware struct {
	l              log.Logger
	internalKey    string
	allowedOrigins []string
}

func New(l log.Logger, internalKey string, allowedOrigins []string) Middleware {
	return Middleware{
		l:              l,
		internalKey:    internalKey,
		allowedOrigins: allowedOrigins,
	}
}
