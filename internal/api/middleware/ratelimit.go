package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	msgRateLimitExceeded = "слишком много запросов"
	msgRateLimiterDown   = "ограничитель запросов недоступен"
)

// Счетчик окна создается атомарно вместе с TTL
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// Scripter подмножество redis-клиента, нужное для выполнения скрипта
type Scripter = redis.Scripter

// RateLimiter ограничитель запросов с фиксированным окном в Redis
type RateLimiter struct {
	rdb     Scripter
	limit   int
	window  time.Duration
	prefix  string
	proxies []*net.IPNet
	logger  Logger
}

// NewRateLimiter создает ограничитель: не более limit запросов за window с одного клиента
// Клиент определяется по RemoteAddr; X-Forwarded-For читается только от trustedProxies
func NewRateLimiter(rdb Scripter, limit int, window time.Duration, trustedProxies []*net.IPNet, logger Logger) *RateLimiter {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		rdb:     rdb,
		limit:   limit,
		window:  window,
		prefix:  "appointments:rl",
		proxies: trustedProxies,
		logger:  logger,
	}
}

// Middleware при недоступности Redis пропускает запрос, если failOpen
func (rl *RateLimiter) Middleware(failOpen bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			count, err := rl.incr(r.Context(), rl.prefix+":"+rl.clientKey(r))
			if err != nil {
				rl.logger.Warn("RateLimiter - redis error: %v", err)
				if failOpen {
					next.ServeHTTP(w, r)
					return
				}
				handlers.RespondError(w, http.StatusServiceUnavailable, msgRateLimiterDown)
				return
			}

			if count > int64(rl.limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
				handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

func (rl *RateLimiter) clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !rl.trusted(net.ParseIP(host)) {
		return host
	}

	// Справа налево: всё левее последнего доверенного прокси клиент мог дописать сам
	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		ip := net.ParseIP(strings.TrimSpace(hops[i]))
		if ip == nil {
			return host
		}
		if !rl.trusted(ip) {
			return ip.String()
		}
	}
	return host
}

func (rl *RateLimiter) trusted(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, n := range rl.proxies {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
