package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotenceHeader = "x-idempotence"
	idempotenceTTL    = 60 * time.Second
)

// Idempotence rejects a byte-identical non-GET request repeated within
// 60 seconds of a successful one, when the client sends an
// x-idempotence key. Requests without the header pass through: the
// favorite/visited engine has its own idempotency contract and a
// repeated create there is a successful no-op, not an error.
func Idempotence(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		key := c.GetHeader(idempotenceHeader)
		if key == "" {
			c.Next()
			return
		}

		redisKey := fmt.Sprintf("binmap:idempotence:%s", hashIdempotenceKey(c, key))
		ctx := c.Request.Context()

		val, err := rdb.Get(ctx, redisKey).Result()
		if err == nil {
			msg := "identical request already succeeded within 60 seconds"
			if val == "0" {
				msg = "identical request is still being processed"
			}
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"ok":      0,
				"code":    http.StatusConflict,
				"message": msg,
			})
			return
		}
		if !errors.Is(err, redis.Nil) {
			c.Next()
			return
		}

		if setErr := rdb.Set(ctx, redisKey, "0", idempotenceTTL).Err(); setErr != nil {
			c.Next()
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			rdb.Set(ctx, redisKey, "1", redis.KeepTTL)
		} else {
			rdb.Del(ctx, redisKey)
		}
	}
}

func hashIdempotenceKey(c *gin.Context, clientKey string) string {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		body = nil
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	raw := clientKey + "|" + c.Request.Method + "|" + c.Request.URL.String() + "|" + string(body)
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}
