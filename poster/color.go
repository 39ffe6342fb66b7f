package poster

import (
	"fmt"
	"strconv"
	"strings"
)

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// ParseHex 解析 #RGB 或 #RRGGBB 形式的颜色字符串。
func ParseHex(s string) (Color, error) {
	raw := strings.TrimSpace(s)
	hex := strings.TrimPrefix(raw, "#")
	if hex == raw {
		return Color{}, fmt.Errorf("颜色 %q 缺少 # 前缀", s)
	}

	switch len(hex) {
	case 3:
		var parts [3]string
		for i := 0; i < 3; i++ {
			parts[i] = string(hex[i]) + string(hex[i])
		}
		hex = parts[0] + parts[1] + parts[2]
	case 6:
		// 已是完整形式
	default:
		return Color{}, fmt.Errorf("颜色 %q 长度非法，仅支持 #RGB 与 #RRGGBB", s)
	}

	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("解析颜色 %q 失败: %w", s, err)
	}
	return Color{
		R: int(val >> 16 & 0xFF),
		G: int(val >> 8 & 0xFF),
		B: int(val & 0xFF),
	}, nil
}
