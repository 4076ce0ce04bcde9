package http

import "time"

// Http holds the HTTP server configuration.
type Http struct {
	Host            string
	Port            int
	ContextPath     string
	PProf           bool
	ExposeMetrics   bool
	AccessLog       bool
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	TLS             TLS
	Auth            Auth
}

type TLS struct {
	CertFile string
	KeyFile  string
}

// Auth carries the token signing settings and the bcrypt hash that
// gates super-user elevation. Expire durations are in minutes.
type Auth struct {
	SecretKey        string
	AccessExpire     time.Duration
	RefreshExpire    time.Duration
	RedisKeyPrefix   string
	SuperUserKeyHash string
}
