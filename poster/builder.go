package poster

import (
	"fmt"
	"strings"

	"github.com/ByLCY/placard/binding"
	"github.com/ByLCY/placard/fontspec"
)

const (
	// contentLineHeight 固定为 36px，与内容字号无关。
	// 这是对原始行为的保留：调大 contentFont 字号并不会放大行距。
	contentLineHeight = 36.0

	qrMargin = 24.0
)

// Build 根据配置生成布局计划。data 非空时会先将文本中的 ${path} 占位符替换为数据值。
// Build 不回填默认值，调用方应先通过 ApplyDefaults 合并配置。
func Build(cfg Config, data any) (*Layout, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸非法: %dx%d", cfg.Width, cfg.Height)
	}

	bg, err := ParseHex(cfg.BackgroundColor)
	if err != nil {
		return nil, fmt.Errorf("解析背景颜色失败: %w", err)
	}

	w := float64(cfg.Width)
	h := float64(cfg.Height)

	// 三段文本的基线位置固定：标题 1/3、副标题 1/2、内容 2/3 处。
	title, err := buildTextBox(binding.Interpolate(cfg.Title, data), cfg.TitleFont, cfg.TitleColor, w/2, h/3, false)
	if err != nil {
		return nil, fmt.Errorf("标题: %w", err)
	}
	subtitle, err := buildTextBox(binding.Interpolate(cfg.Subtitle, data), cfg.SubtitleFont, cfg.SubtitleColor, w/2, h/2, false)
	if err != nil {
		return nil, fmt.Errorf("副标题: %w", err)
	}
	content, err := buildTextBox(binding.Interpolate(cfg.Content, data), cfg.ContentFont, cfg.ContentColor, w/2, h/1.5, true)
	if err != nil {
		return nil, fmt.Errorf("内容: %w", err)
	}

	l := &Layout{
		Width:      w,
		Height:     h,
		Background: bg,
		Texts:      []TextBox{title, subtitle, content},
		OutputPath: cfg.OutputPath,
	}

	if cfg.BackgroundImageURL != "" {
		l.Image = &ImagePlan{
			Source:       cfg.BackgroundImageURL,
			ScrimOpacity: cfg.ScrimOpacity,
		}
	}

	if cfg.QRText != "" {
		size := float64(cfg.QRSize)
		l.QR = &QRBox{
			Text: binding.Interpolate(cfg.QRText, data),
			X:    w - qrMargin - size,
			Y:    h - qrMargin - size,
			Size: size,
		}
	}

	return l, nil
}

// buildTextBox 解析字体与颜色并生成文本块。multiline 为真时按显式换行拆分，
// 空内容也会保留一个空行（基线位置不变）。
func buildTextBox(text, font, colorHex string, x, y float64, multiline bool) (TextBox, error) {
	spec, err := fontspec.Parse(font)
	if err != nil {
		return TextBox{}, fmt.Errorf("解析字体 %q 失败: %w", font, err)
	}
	col, err := ParseHex(colorHex)
	if err != nil {
		return TextBox{}, fmt.Errorf("解析颜色失败: %w", err)
	}

	lines := []string{text}
	lineHeight := 0.0
	if multiline {
		lines = strings.Split(text, "\n")
		lineHeight = contentLineHeight
	}

	return TextBox{
		Lines:      lines,
		X:          x,
		Y:          y,
		LineHeight: lineHeight,
		Font:       spec,
		Color:      col,
	}, nil
}
