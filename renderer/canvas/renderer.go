package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/placard/fonts"
	"github.com/ByLCY/placard/poster"
	"github.com/ByLCY/placard/renderer"
)

// pxToPt 将像素字号换算为 Face 所需的 pt。画布单位即像素，按 1 单位 = 1px 栅格化。
const pxToPt = 72.0 / 25.4

const defaultHTTPTimeout = 15 * time.Second

// Renderer 基于 github.com/tdewolff/canvas 将布局计划渲染为 PNG 字节。
type Renderer struct {
	baseDir  string
	registry *fonts.Registry
	client   *resty.Client
	logger   *log.Logger
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options 配置画布渲染器。
type Options struct {
	BaseDir     string          // 相对图片路径的解析根目录
	Registry    *fonts.Registry // 为空时使用进程级默认注册表
	HTTPTimeout time.Duration   // 远程背景图的请求超时
	Logger      *log.Logger     // 背景图失败告警的输出目标
}

// NewRenderer 创建以 baseDir 为资源根目录的渲染器。
func NewRenderer(baseDir string) *Renderer {
	return NewRendererWithOptions(Options{BaseDir: baseDir})
}

// NewRendererWithOptions 创建可注入字体注册表与日志器的渲染器。
func NewRendererWithOptions(opts Options) *Renderer {
	registry := opts.Registry
	if registry == nil {
		registry = fonts.Default()
	}
	timeout := opts.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{
		baseDir:  opts.BaseDir,
		registry: registry,
		client:   resty.New().SetTimeout(timeout),
		logger:   logger,
	}
}

// Render 渲染布局计划并返回 PNG 字节。
// 背景图加载失败不致命：记录日志后退回纯色背景；其余错误直接向上传播。
func (r *Renderer) Render(l *poster.Layout) ([]byte, error) {
	if l == nil {
		return nil, fmt.Errorf("布局计划为空")
	}
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸非法: %gx%g", l.Width, l.Height)
	}

	c := canvas.New(l.Width, l.Height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	// 背景底色始终先铺满，图片加载失败时它就是最终背景
	ctx.SetFillColor(fillColor(l.Background))
	ctx.DrawPath(0, 0, canvas.Rectangle(l.Width, l.Height))

	if l.Image != nil {
		if err := r.drawBackgroundImage(ctx, l); err != nil {
			r.logger.Printf("加载背景图 %s 失败，退回纯色背景: %v", l.Image.Source, err)
		}
	}

	for _, tb := range l.Texts {
		if err := r.drawTextBox(ctx, tb); err != nil {
			return nil, err
		}
	}

	if l.QR != nil {
		if err := drawQR(ctx, l.QR); err != nil {
			return nil, err
		}
	}

	img := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// drawBackgroundImage 以 cover 方式绘制背景图并覆盖遮罩层。
func (r *Renderer) drawBackgroundImage(ctx *canvas.Context, l *poster.Layout) error {
	src, err := r.loadImage(l.Image.Source)
	if err != nil {
		return err
	}

	bounds := src.Bounds()
	fit, err := poster.Cover(float64(bounds.Dx()), float64(bounds.Dy()), l.Width, l.Height)
	if err != nil {
		return err
	}

	// 预先缩放并裁剪到画布大小，超出画布的部分在此一并裁掉
	dst := image.NewRGBA(image.Rect(0, 0, int(l.Width), int(l.Height)))
	target := image.Rect(
		int(math.Round(fit.OffsetX)),
		int(math.Round(fit.OffsetY)),
		int(math.Round(fit.OffsetX+fit.Width)),
		int(math.Round(fit.OffsetY+fit.Height)),
	)
	xdraw.CatmullRom.Scale(dst, target, src, bounds, xdraw.Over, nil)
	ctx.DrawImage(0, 0, dst, canvas.DPMM(1.0))

	// 遮罩：半透明黑色矩形，保证前景文字在任意背景图上可读
	if l.Image.ScrimOpacity > 0 {
		alpha := uint8(math.Round(math.Min(l.Image.ScrimOpacity, 1) * 255))
		ctx.SetFillColor(color.RGBA{0, 0, 0, alpha})
		ctx.DrawPath(0, 0, canvas.Rectangle(l.Width, l.Height))
	}
	return nil
}

// loadImage 加载背景图：http(s) 来源走 HTTP 客户端，其余按路径从磁盘读取。
func (r *Renderer) loadImage(source string) (image.Image, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := r.client.R().Get(source)
		if err != nil {
			return nil, fmt.Errorf("请求背景图失败: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("请求背景图失败: HTTP %d", resp.StatusCode())
		}
		img, _, err := image.Decode(bytes.NewReader(resp.Body()))
		if err != nil {
			return nil, fmt.Errorf("解码背景图失败: %w", err)
		}
		return img, nil
	}

	path := source
	if !filepath.IsAbs(path) && r.baseDir != "" {
		path = filepath.Join(r.baseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("读取背景图 %s 失败: %w", source, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("解码背景图 %s 失败: %w", source, err)
	}
	return img, nil
}

// drawTextBox 在记录的基线位置逐行绘制水平居中的文本。
// 不做任何折行与越界检查：过长的行会原样溢出画布。
func (r *Renderer) drawTextBox(ctx *canvas.Context, tb poster.TextBox) error {
	face, err := r.registry.Face(tb.Font.Family, tb.Font.SizePx*pxToPt, fillColor(tb.Color), parseFontStyle(tb.Font.Weight))
	if err != nil {
		return err
	}

	y := tb.Y
	for _, line := range tb.Lines {
		if line != "" {
			ctx.DrawText(tb.X, y, canvas.NewTextLine(face, line, canvas.Center))
		}
		y += tb.LineHeight
	}
	return nil
}

// drawQR 生成二维码图像并绘制到布局指定的位置。
func drawQR(ctx *canvas.Context, qr *poster.QRBox) error {
	code, err := qrcode.New(qr.Text, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("生成二维码失败: %w", err)
	}
	ctx.DrawImage(qr.X, qr.Y, code.Image(int(qr.Size)), canvas.DPMM(1.0))
	return nil
}

// parseFontStyle 将字重关键字映射为 canvas 的字体样式。
func parseFontStyle(weight string) canvas.FontStyle {
	if weight == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(weight)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	case strings.Contains(s, "thin"):
		result = canvas.FontThin
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func fillColor(c poster.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
