package id

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// GetUlid 生成 ULID，按时间排序，作为预览令牌使用
func GetUlid() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	ms := ulid.Timestamp(time.Now())
	id, err := ulid.New(ms, entropy)
	if err != nil {
		return ""
	}
	return id.String()
}
