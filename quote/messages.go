package quote

import "strings"

// Messages user facing templates, filled with fmt verbs in the order noted.
type Messages struct {
	// Rate: base, target, rate
	Rate string
	// Unsupported: target as typed by the user
	Unsupported string
	// Failed: provider error type or transport error
	Failed string
	// UnknownError replaces an empty provider error type
	UnknownError string
	// Header: base
	Header string
	// Line: code, rate
	Line string
	// Usage for a command without arguments
	Usage string
}

var catalogs = map[string]Messages{
	"en": {
		Rate:         "%s to %s rate is: %s",
		Unsupported:  "Target currency %s is not supported.",
		Failed:       "Query failed: %s",
		UnknownError: "unknown error",
		Header:       "%s exchange rates:",
		Line:         "%s: %s",
		Usage:        "Usage: %s <base> [target], e.g. %s USD EUR",
	},
	"zh": {
		Rate:         "%s 到 %s 的汇率是: %s",
		Unsupported:  "目标货币 %s 不支持查询。",
		Failed:       "查询失败: %s",
		UnknownError: "未知错误",
		Header:       "%s 汇率：",
		Line:         "%s: %s",
		Usage:        "用法: %s <基础货币> [目标货币]，例如 %s 美元 欧元",
	},
}

// DefaultLocale is used for unknown or empty locales.
const DefaultLocale = "en"

// MessagesFor returns the catalog for locale, falling back to DefaultLocale.
func MessagesFor(locale string) Messages {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if m, ok := catalogs[locale]; ok {
		return m
	}
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		if m, ok := catalogs[locale[:i]]; ok {
			return m
		}
	}
	return catalogs[DefaultLocale]
}
