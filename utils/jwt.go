package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	redis "github.com/redis/go-redis/v9"
)

// RedisClient is an optional shared Redis client used for admin token
// revocation. It is nil when REDIS_ADDR is not configured; revocation then
// falls back to the in-process store below.
var RedisClient *redis.Client

func init() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		var dbn int
		_, _ = fmt.Sscanf(dbStr, "%d", &dbn)
		opts.DB = dbn
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		fmt.Printf("warning: redis ping failed: %v\n", err)
		// don't fail startup for redis issues; revocation falls back to memory
		return
	}
	RedisClient = rc
}

type contextKey string

const AdminEmailKey = contextKey("adminEmail")
const RequestIDKey = contextKey("requestID")

const adminTokenLifetime = 6 * time.Hour

// in-process revocation fallback, jti -> expiry
var (
	revokedMu sync.Mutex
	revoked   = map[string]time.Time{}
)

func generateJTI(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateAdminToken issues a short-lived HS256 token for the administrative
// status-correction endpoints.
func GenerateAdminToken(email string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	jti, err := generateJTI(24)
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"exp":   now.Add(adminTokenLifetime).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"jti":   jti,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAdminToken parses the token, checks signature, registered claims,
// role and revocation, and returns the claims when valid.
func ValidateAdminToken(ctx context.Context, tokenStr string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		if err != nil && strings.Contains(err.Error(), "expired") {
			return nil, errors.New("token expired")
		}
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	if role, _ := claims["role"].(string); role != "admin" {
		return nil, errors.New("insufficient role")
	}
	jti, _ := claims["jti"].(string)
	if jti != "" && isRevoked(ctx, jti) {
		return nil, errors.New("token revoked")
	}
	return claims, nil
}

// RevokeAdminToken marks the token's jti revoked until its natural expiry.
func RevokeAdminToken(ctx context.Context, tokenStr string) error {
	claims, err := ValidateAdminToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return errors.New("token has no jti")
	}
	expUnix, _ := claims["exp"].(float64)
	exp := time.Unix(int64(expUnix), 0)
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	if RedisClient != nil {
		return RedisClient.Set(ctx, "revoked:"+jti, 1, ttl).Err()
	}
	revokedMu.Lock()
	revoked[jti] = exp
	revokedMu.Unlock()
	return nil
}

func isRevoked(ctx context.Context, jti string) bool {
	if RedisClient != nil {
		n, err := RedisClient.Exists(ctx, "revoked:"+jti).Result()
		return err == nil && n > 0
	}
	revokedMu.Lock()
	defer revokedMu.Unlock()
	exp, ok := revoked[jti]
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		delete(revoked, jti)
		return false
	}
	return true
}
