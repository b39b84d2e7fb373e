package flagx

import (
	"os"
	"strconv"
	"strings"
)

// StringEnv overwrites *dst with the value of key when it is set and non-empty.
func StringEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

// BoolEnv overwrites *dst when key holds a value strconv.ParseBool accepts.
// Unparseable values are ignored.
func BoolEnv(dst *bool, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
		*dst = b
	}
}
