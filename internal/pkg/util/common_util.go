package util

import (
	"strconv"
	"strings"
)

// StrToUint64 解析失败返回 0
func StrToUint64(s string) uint64 {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseIDs 解析逗号分隔的 id 列表，如 "3,5,8"
func ParseIDs(raw string) ([]uint64, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil || id == 0 {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
