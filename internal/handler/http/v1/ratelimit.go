package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
)

// RateLimitMiddleware ограничивает частоту входящих событий. rate задается в формате
// limiter, например "100-S". При недоступности хранилища лимитов запрос пропускается:
// оповещение важнее ограничения.
func RateLimitMiddleware(store limiter.Store, rate string, log *logrus.Logger) (gin.HandlerFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}

	return mgin.NewMiddleware(
		limiter.New(store, r),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			log.WithField("client_ip", c.ClientIP()).Warn("Rate limit exceeded")
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		}),
		// драйвер вызывает c.Abort() уже после обработчика ошибки, поэтому
		// оставшаяся цепочка должна отработать внутри c.Next()
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			log.WithError(err).Error("Rate limiter store failed, letting request through")
			c.Next()
		}),
	), nil
}
