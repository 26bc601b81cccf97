package logger

import (
	"regexp"
	"strings"
)

// Sanitizer 負責過濾日誌中的敏感資訊
//
// Messages are rewritten with the rule patterns; in key/value args only the
// values of sensitive keys are masked. File paths are left untouched since
// they are what the tool reports.
//
// The rules are fixed at construction, so a Sanitizer is safe for
// concurrent use.
type Sanitizer struct {
	rules []SanitizeRule
}

// SanitizeRule 單一過濾規則
type SanitizeRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

var sensitiveKeys = []string{
	"password", "passwd", "pwd",
	"token", "secret", "api_key", "apikey",
	"credential", "auth",
}

// NewSanitizer 建立預設 sanitizer
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		rules: []SanitizeRule{
			{regexp.MustCompile(`(?i)(password|passwd|pwd)=\S+`), "$1=***"},
			{regexp.MustCompile(`(?i)token=\S+`), "token=***"},
			{regexp.MustCompile(`(?i)bearer\s+\S+`), "bearer ***"},
			{regexp.MustCompile(`(?i)api[_-]?key=\S+`), "api_key=***"},
		},
	}
}

// Sanitize applies every rule to input
func (s *Sanitizer) Sanitize(input string) string {
	for _, rule := range s.rules {
		input = rule.Pattern.ReplaceAllString(input, rule.Replacement)
	}
	return input
}

// SanitizeArgs masks the values that follow sensitive keys. args is not modified.
func (s *Sanitizer) SanitizeArgs(args []any) []any {
	if len(args) == 0 {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)

	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if !ok || !isSensitiveKey(key) {
			continue
		}
		switch v := result[i+1].(type) {
		case string:
			result[i+1] = maskValue(v)
		case error:
			result[i+1] = maskValue(v.Error())
		}
	}
	return result
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, sk := range sensitiveKeys {
		if strings.Contains(lower, sk) {
			return true
		}
	}
	return false
}

// maskValue 遮蔽值（保留前後各1字元）
func maskValue(value string) string {
	if len(value) <= 2 {
		return "***"
	}
	if len(value) <= 8 {
		return value[:1] + "***"
	}
	return value[:1] + "***" + value[len(value)-1:]
}
