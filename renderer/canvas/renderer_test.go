package canvasrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/placard/fonts"
	"github.com/ByLCY/placard/fontspec"
	"github.com/ByLCY/placard/poster"
)

// decodePNG 解码 Render 返回的字节并校验其为合法 PNG。
func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("解码 PNG 失败: %v", err)
	}
	return img
}

// pixelRGB 返回 8 位的像素颜色分量。
func pixelRGB(img image.Image, x, y int) (int, int, int) {
	r, g, b, _ := img.At(x, y).RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func TestRenderSolidBackground(t *testing.T) {
	r := NewRenderer(".")
	l := &poster.Layout{
		Width:      64,
		Height:     32,
		Background: poster.Color{R: 42, G: 42, B: 42},
	}

	data, err := r.Render(l)
	if err != nil {
		t.Fatalf("Render 失败: %v", err)
	}

	img := decodePNG(t, data)
	bounds := img.Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 32 {
		t.Fatalf("输出尺寸错误: %dx%d", bounds.Dx(), bounds.Dy())
	}

	// 无文本、无背景图时任意内部像素都应等于背景色
	for _, p := range []image.Point{{5, 5}, {32, 16}, {60, 28}} {
		cr, cg, cb := pixelRGB(img, p.X, p.Y)
		if absDiff(cr, 42) > 2 || absDiff(cg, 42) > 2 || absDiff(cb, 42) > 2 {
			t.Fatalf("像素 %v 颜色错误: (%d, %d, %d)", p, cr, cg, cb)
		}
	}
}

// TestRenderMissingImageFallsBack 背景图加载失败不致命：记录日志后使用纯色背景。
func TestRenderMissingImageFallsBack(t *testing.T) {
	var logBuf bytes.Buffer
	r := NewRendererWithOptions(Options{
		BaseDir: t.TempDir(),
		Logger:  log.New(&logBuf, "", 0),
	})
	l := &poster.Layout{
		Width:      48,
		Height:     48,
		Background: poster.Color{R: 42, G: 42, B: 42},
		Image:      &poster.ImagePlan{Source: "no-such-image.png", ScrimOpacity: 0.5},
	}

	data, err := r.Render(l)
	if err != nil {
		t.Fatalf("背景图缺失时 Render 不应报错: %v", err)
	}

	img := decodePNG(t, data)
	cr, cg, cb := pixelRGB(img, 24, 24)
	if absDiff(cr, 42) > 2 || absDiff(cg, 42) > 2 || absDiff(cb, 42) > 2 {
		t.Fatalf("回退背景颜色错误: (%d, %d, %d)", cr, cg, cb)
	}
	if logBuf.Len() == 0 {
		t.Fatalf("背景图失败应有日志输出")
	}
}

// writeTestImage 生成一张纯白 PNG 供背景图测试使用。
func writeTestImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("创建测试图片失败: %v", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("编码测试图片失败: %v", err)
	}
	return name
}

// TestRenderScrimDarkensImage 验证背景图之上的遮罩层确实压暗了像素。
func TestRenderScrimDarkensImage(t *testing.T) {
	dir := t.TempDir()
	name := writeTestImage(t, dir, "bg.png", 8, 8)
	r := NewRenderer(dir)

	render := func(opacity float64) image.Image {
		l := &poster.Layout{
			Width:      16,
			Height:     16,
			Background: poster.Color{R: 0, G: 0, B: 0},
			Image:      &poster.ImagePlan{Source: name, ScrimOpacity: opacity},
		}
		data, err := r.Render(l)
		if err != nil {
			t.Fatalf("Render 失败: %v", err)
		}
		return decodePNG(t, data)
	}

	raw := render(0)
	cr, _, _ := pixelRGB(raw, 8, 8)
	if absDiff(cr, 255) > 2 {
		t.Fatalf("无遮罩时中心像素应为白色: %d", cr)
	}

	dimmed := render(0.5)
	dr, dg, db := pixelRGB(dimmed, 8, 8)
	if absDiff(dr, 127) > 6 || absDiff(dg, 127) > 6 || absDiff(db, 127) > 6 {
		t.Fatalf("50%% 遮罩后中心像素应约为 127: (%d, %d, %d)", dr, dg, db)
	}
	if dr >= cr {
		t.Fatalf("遮罩未压暗像素: %d >= %d", dr, cr)
	}
}

// TestRenderQRDrawsModules 二维码区域应出现明显亮于背景的像素。
func TestRenderQRDrawsModules(t *testing.T) {
	r := NewRenderer(".")
	l := &poster.Layout{
		Width:      96,
		Height:     96,
		Background: poster.Color{R: 42, G: 42, B: 42},
		QR:         &poster.QRBox{Text: "https://example.com", X: 16, Y: 16, Size: 64},
	}

	data, err := r.Render(l)
	if err != nil {
		t.Fatalf("Render 失败: %v", err)
	}

	img := decodePNG(t, data)
	found := false
	for y := 16; y < 80 && !found; y++ {
		for x := 16; x < 80; x++ {
			if cr, _, _ := pixelRGB(img, x, y); cr > 200 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatalf("二维码区域未出现亮像素")
	}
}

// TestRenderTextDrawsPixels 依赖磁盘上的字体文件，缺失时跳过。
func TestRenderTextDrawsPixels(t *testing.T) {
	fontPath := filepath.Join("..", "..", "fonts", "NotoSansSC-Regular.ttf")
	if _, err := os.Stat(fontPath); err != nil {
		t.Skipf("缺少字体文件 %s，跳过文本绘制测试", fontPath)
	}

	registry := fonts.NewRegistry()
	if err := registry.Register("Noto Sans SC", canvas.FontRegular, fontPath); err != nil {
		t.Fatalf("注册字体失败: %v", err)
	}

	r := NewRendererWithOptions(Options{Registry: registry})
	l := &poster.Layout{
		Width:      200,
		Height:     100,
		Background: poster.Color{R: 0, G: 0, B: 0},
		Texts: []poster.TextBox{{
			Lines: []string{"测试"},
			X:     100,
			Y:     60,
			Font:  fontspec.Spec{Family: "Noto Sans SC", SizePx: 32},
			Color: poster.Color{R: 255, G: 255, B: 255},
		}},
	}

	data, err := r.Render(l)
	if err != nil {
		t.Fatalf("Render 失败: %v", err)
	}

	img := decodePNG(t, data)
	found := false
	for y := 20; y < 80 && !found; y++ {
		for x := 40; x < 160; x++ {
			if cr, _, _ := pixelRGB(img, x, y); cr > 128 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatalf("画布上未出现文字像素")
	}
}

func TestRenderRejectsInvalidLayout(t *testing.T) {
	r := NewRenderer(".")
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("空布局应报错")
	}
	if _, err := r.Render(&poster.Layout{Width: 0, Height: 10}); err == nil {
		t.Fatalf("非法尺寸应报错")
	}
}

// TestRenderUnregisteredFontFails 文本字体未注册属于渲染错误，必须向上传播。
func TestRenderUnregisteredFontFails(t *testing.T) {
	r := NewRendererWithOptions(Options{Registry: fonts.NewRegistry()})
	l := &poster.Layout{
		Width:      32,
		Height:     32,
		Background: poster.Color{R: 0, G: 0, B: 0},
		Texts: []poster.TextBox{{
			Lines: []string{"x"},
			X:     16,
			Y:     16,
			Font:  fontspec.Spec{Family: "Ghost Family", SizePx: 12},
		}},
	}
	if _, err := r.Render(l); err == nil {
		t.Fatalf("未注册字体应报错")
	}
}
