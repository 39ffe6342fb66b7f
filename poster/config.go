package poster

// 默认配置取自 1200x630 的社交卡片尺寸，字体族统一使用 Noto Sans SC。
const (
	defaultWidth  = 1200
	defaultHeight = 630

	defaultBackgroundColor = "#2a2a2a"

	defaultTitle    = "默认海报标题"
	defaultSubtitle = "默认副标题"
	defaultContent  = "第一行内容\n第二行内容"

	defaultTitleColor    = "#ffffff"
	defaultSubtitleColor = "#cccccc"
	defaultContentColor  = "#aaaaaa"

	defaultTitleFont    = "bold 64px Noto Sans SC"
	defaultSubtitleFont = "32px Noto Sans SC"
	defaultContentFont  = "24px Noto Sans SC"

	defaultScrimOpacity = 0.5
	defaultQRSize       = 120

	defaultOutputPath = "output/poster.png"
)

// DefaultConfig 返回全部字段填好的默认配置。
func DefaultConfig() Config {
	return Config{}.ApplyDefaults()
}

// ApplyDefaults 将 c 中的零值字段替换为默认值，返回合并后的副本。
// 这对应"部分配置覆盖默认配置"的合并语义：已提供的字段保持不变。
func (c Config) ApplyDefaults() Config {
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	if c.BackgroundColor == "" {
		c.BackgroundColor = defaultBackgroundColor
	}
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Subtitle == "" {
		c.Subtitle = defaultSubtitle
	}
	if c.Content == "" {
		c.Content = defaultContent
	}
	if c.TitleColor == "" {
		c.TitleColor = defaultTitleColor
	}
	if c.SubtitleColor == "" {
		c.SubtitleColor = defaultSubtitleColor
	}
	if c.ContentColor == "" {
		c.ContentColor = defaultContentColor
	}
	if c.TitleFont == "" {
		c.TitleFont = defaultTitleFont
	}
	if c.SubtitleFont == "" {
		c.SubtitleFont = defaultSubtitleFont
	}
	if c.ContentFont == "" {
		c.ContentFont = defaultContentFont
	}
	if c.ScrimOpacity <= 0 {
		c.ScrimOpacity = defaultScrimOpacity
	}
	if c.ScrimOpacity > 1 {
		c.ScrimOpacity = 1
	}
	if c.QRSize <= 0 {
		c.QRSize = defaultQRSize
	}
	if c.OutputPath == "" {
		c.OutputPath = defaultOutputPath
	}
	return c
}
