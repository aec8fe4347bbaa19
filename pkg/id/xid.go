package id

import (
	"github.com/rs/xid"
)

// GetXid 生成 xid，作为记录主键使用
func GetXid() string {
	return xid.New().String()
}
