package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认语言
const DefaultLocale = "zh-CN"

var supportedLocales = map[string]bool{
	"zh-CN": true,
	"en-US": true,
}

// ResolveLocale 从请求解析语言偏好（query > header > 默认）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := normalizeLocale(c.Query("locale")); locale != "" {
		return locale
	}
	accept := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(accept, ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := normalizeLocale(lang); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// T 返回指定 key 的翻译文案；缺失时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if messages, ok := catalog[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if messages, ok := catalog[DefaultLocale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	return key
}

// Sprintf 返回带格式化参数的翻译文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func normalizeLocale(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "zh"):
		return "zh-CN"
	case strings.HasPrefix(lower, "en"):
		return "en-US"
	}
	if supportedLocales[trimmed] {
		return trimmed
	}
	return ""
}
