package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig defines CORS configuration options.
type CORSConfig struct {
	// Origins lists allowed origins. Empty or "*" allows any origin.
	Origins []string
	Headers []string
	MaxAge  time.Duration
}

// DefaultCORSConfig allows the given origins, or any origin when none are named.
func DefaultCORSConfig(origins ...string) CORSConfig {
	return CORSConfig{
		Origins: origins,
		Headers: []string{"Content-Type", "Accept", "Authorization", "Origin", "X-Trace-ID", "X-Span-ID"},
		MaxAge:  12 * time.Hour,
	}
}

// AllowsAnyOrigin reports whether the config accepts every origin.
func (c CORSConfig) AllowsAnyOrigin() bool {
	if len(c.Origins) == 0 {
		return true
	}
	for _, o := range c.Origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// CORS creates a CORS middleware. Credentials are only allowed for explicit
// origins; the desktop authenticates with bearer tokens, not cookies.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  cfg.Headers,
		ExposeHeaders: []string{"X-Trace-ID", "X-Span-ID"},
		MaxAge:        cfg.MaxAge,
	}
	if cfg.AllowsAnyOrigin() {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = cfg.Origins
		conf.AllowCredentials = true
	}
	return cors.New(conf)
}
