package renderer

import "github.com/ByLCY/placard/poster"

// Renderer 将布局计划输出为最终图像字节，例如 PNG。
// Render 返回编码后的二进制数据以及可能的错误。
type Renderer interface {
	Render(l *poster.Layout) ([]byte, error)
}
