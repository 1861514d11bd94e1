package util

import (
	"strconv"
)

func ParseSnowflake(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
