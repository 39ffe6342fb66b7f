package poster

import "github.com/ByLCY/placard/fontspec"

// 该文件定义海报配置与布局计划，供布局计算、渲染与调试 JSON 共用。

// Config 描述一张海报的全部可配置项，JSON 字段名与配置文件保持一致。
// 零值字段不会被 Build 自动回填，调用方应先通过 ApplyDefaults 合并默认值。
type Config struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	BackgroundColor    string `json:"backgroundColor"`
	BackgroundImageURL string `json:"backgroundImageUrl"`

	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Content  string `json:"content"`

	TitleColor    string `json:"titleColor"`
	SubtitleColor string `json:"subtitleColor"`
	ContentColor  string `json:"contentColor"`

	TitleFont    string `json:"titleFont"`
	SubtitleFont string `json:"subtitleFont"`
	ContentFont  string `json:"contentFont"`

	// ScrimOpacity 控制背景图之上遮罩层的不透明度（0-1），仅在背景图绘制成功时生效。
	ScrimOpacity float64 `json:"scrimOpacity"`

	// QRText 非空时会在右下角绘制一个边长 QRSize 的二维码。
	QRText string `json:"qrText"`
	QRSize int    `json:"qrSize"`

	OutputPath string `json:"outputPath"`
}

// Layout 是渲染器可直接消费的布局计划，坐标与尺寸单位均为像素。
type Layout struct {
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Background Color      `json:"background"`
	Image      *ImagePlan `json:"image,omitempty"`
	Texts      []TextBox  `json:"texts"`
	QR         *QRBox     `json:"qr,omitempty"`
	OutputPath string     `json:"outputPath"`
}

// ImagePlan 记录背景图来源与遮罩不透明度。
// cover 缩放参数依赖图片原始尺寸，由渲染器在解码后通过 Cover 计算。
type ImagePlan struct {
	Source       string  `json:"source"`
	ScrimOpacity float64 `json:"scrimOpacity"`
}

// TextBox 表示一段基线位置已经确定的文本。
// Y 为首行基线，后续行依次下移 LineHeight；X 为水平居中锚点。
type TextBox struct {
	Lines      []string      `json:"lines"`
	X          float64       `json:"x"`
	Y          float64       `json:"y"`
	LineHeight float64       `json:"lineHeight"`
	Font       fontspec.Spec `json:"font"`
	Color      Color         `json:"color"`
}

// QRBox 描述右下角二维码的位置与边长。
type QRBox struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}
