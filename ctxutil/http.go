package ctxutil

import (
	"context"
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	clientIPKey  = "client_ip"
	userAgentKey = "user_agent"
)

// SetClientIP sets client IP to context.Context
func SetClientIP(ctx context.Context, ip string) context.Context {
	return SetValue(ctx, clientIPKey, ip)
}

// GetClientIP gets client IP from context.Context
func GetClientIP(ctx context.Context) string {
	if ip, ok := GetValue(ctx, clientIPKey).(string); ok && ip != "" {
		return ip
	}
	if ginCtx, ok := GetGinContext(ctx); ok {
		return getClientIPFromGin(ginCtx)
	}
	return "unknown"
}

// SetUserAgent sets user agent to context.Context
func SetUserAgent(ctx context.Context, userAgent string) context.Context {
	return SetValue(ctx, userAgentKey, userAgent)
}

// GetUserAgent gets user agent from context.Context
func GetUserAgent(ctx context.Context) string {
	if ua, ok := GetValue(ctx, userAgentKey).(string); ok {
		return ua
	}
	return ""
}

// IsMobileUserAgent reports whether the user agent looks like a phone or tablet.
func IsMobileUserAgent(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, keyword := range []string{"mobile", "android", "iphone", "ipad", "windows phone"} {
		if strings.Contains(ua, keyword) {
			return true
		}
	}
	return false
}

// getClientIPFromGin gets client IP from Gin context
func getClientIPFromGin(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if ip != "" && !isPrivateIP(ip) {
			return ip
		}
	}

	if xRealIP := c.GetHeader("X-Real-IP"); xRealIP != "" && !isPrivateIP(xRealIP) {
		return xRealIP
	}

	if clientIP := c.ClientIP(); clientIP != "" {
		return clientIP
	}

	if c.Request != nil {
		return getIPFromAddr(c.Request.RemoteAddr)
	}
	return "unknown"
}

// getIPFromAddr extracts IP from address string
func getIPFromAddr(addr string) string {
	if addr == "" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

var privateRanges = func() []*net.IPNet {
	cidrs := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"169.254.0.0/16",
		"::1/128",
		"fc00::/7",
		"fe80::/10",
	}
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		if _, subnet, err := net.ParseCIDR(cidr); err == nil {
			nets = append(nets, subnet)
		}
	}
	return nets
}()

// isPrivateIP checks if IP is private. Unparseable input counts as private.
func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return true
	}
	for _, subnet := range privateRanges {
		if subnet.Contains(ip) {
			return true
		}
	}
	return false
}
