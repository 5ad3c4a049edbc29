package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-hris-payroll/internal/shared/apperror"
	"go-hris-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"

	idempotencyLockTTL  = 30 * time.Second
	idempotencyCacheTTL = 24 * time.Hour
)

type cachedResponse struct {
	Status      int             `json:"status"`
	Body        json.RawMessage `json:"body"`
	Fingerprint string          `json:"fingerprint"`
}

// requestFingerprint hashes the request body and restores it for the handler.
func requestFingerprint(c *gin.Context) (string, error) {
	if c.Request.Body == nil {
		sum := sha256.Sum256(nil)
		return hex.EncodeToString(sum[:]), nil
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a previous successful POST with
// the same Idempotency-Key for the same employee. A concurrent duplicate that
// arrives while the first is still running gets 409 PROCESSING, and reusing a
// key with a different body is rejected with 422. Requests without the header
// pass through untouched; correctness never depends on this layer, it only
// spares clients a second round of domain errors.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	log := zap.L().Named("middleware.idempotency")
	return func(c *gin.Context) {
		idempKey := c.GetHeader(HeaderIdempotencyKey)
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		fingerprint, err := requestFingerprint(c)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Request body could not be read", nil)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s:%s",
			c.FullPath(), c.GetString(KeyCompanyID), c.GetString(KeyEmployeeID), idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached cachedResponse
			if json.Unmarshal([]byte(val), &cached) == nil {
				if cached.Fingerprint != fingerprint {
					response.Error(c, http.StatusUnprocessableEntity, apperror.CodeIdempotencyKeyReused,
						"Idempotency-Key was already used with a different request body", nil)
					c.Abort()
					return
				}
				c.Header("Idempotent-Replayed", "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock unavailable, continuing without it", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"ok": false,
				"error": gin.H{
					"code":    "PROCESSING",
					"message": "A request with this Idempotency-Key is still being processed",
				},
			})
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 {
			payload, err := json.Marshal(cachedResponse{
				Status:      status,
				Body:        writer.body.Bytes(),
				Fingerprint: fingerprint,
			})
			if err == nil {
				if err := rdb.Set(ctx, cacheKey, payload, idempotencyCacheTTL).Err(); err != nil {
					log.Warn("store idempotent response failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		if err := rdb.Del(ctx, lockKey).Err(); err != nil {
			log.Warn("release idempotency lock failed", zap.String("key", lockKey), zap.Error(err))
		}
	}
}
