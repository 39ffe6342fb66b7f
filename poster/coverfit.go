package poster

import (
	"fmt"
	"math"
)

// CoverFit 描述 cover 适配的结果：缩放后的尺寸与居中偏移。
// 偏移量在被铺满的轴上恒 <= 0，多出画布的部分由渲染器裁掉。
type CoverFit struct {
	Scale   float64 `json:"scale"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// Cover 计算将 (imgW, imgH) 的图片铺满 (w, h) 画布所需的缩放与偏移。
// 缩放系数取两轴比例中的较大者，保证缩放后的图片完整覆盖画布并居中。
func Cover(imgW, imgH, w, h float64) (CoverFit, error) {
	if imgW <= 0 || imgH <= 0 {
		return CoverFit{}, fmt.Errorf("图片尺寸非法: %gx%g", imgW, imgH)
	}
	if w <= 0 || h <= 0 {
		return CoverFit{}, fmt.Errorf("画布尺寸非法: %gx%g", w, h)
	}

	scale := math.Max(w/imgW, h/imgH)
	scaledW := imgW * scale
	scaledH := imgH * scale
	return CoverFit{
		Scale:   scale,
		Width:   scaledW,
		Height:  scaledH,
		OffsetX: (w - scaledW) / 2,
		OffsetY: (h - scaledH) / 2,
	}, nil
}
