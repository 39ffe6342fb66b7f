package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/placard/fonts"
	"github.com/ByLCY/placard/poster"
	"github.com/ByLCY/placard/renderer"
	canvasrenderer "github.com/ByLCY/placard/renderer/canvas"
)

const (
	fontFamilyName  = "Noto Sans SC"
	fontRegularPath = "fonts/NotoSansSC-Regular.ttf"
	fontBoldPath    = "fonts/NotoSansSC-Bold.ttf"
)

func main() {
	configPath := flag.String("config", "", "海报配置 JSON 文件路径（留空时渲染内置示例）")
	outPath := flag.String("out", "", "输出 PNG 路径（覆盖配置中的 outputPath）")
	debugPath := flag.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到文本占位符的 JSON 数据")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	for _, dir := range []string{"fonts", "images", "output"} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("创建目录 %s 失败: %v", dir, err)
		}
	}

	if err := registerFonts(); err != nil {
		log.Fatalf("注册字体失败: %v", err)
	}

	configs, err := loadConfigs(*configPath, *outPath)
	if err != nil {
		log.Fatalf("读取配置失败: %v", err)
	}

	var r renderer.Renderer = canvasrenderer.NewRenderer(".")
	for i, cfg := range configs {
		path, err := run(cfg, inputData, debugPathFor(*debugPath, i, len(configs)), r)
		if err != nil {
			log.Fatalf("生成海报失败: %v", err)
		}
		fmt.Printf("已生成海报：%s\n", path)
	}
}

// debugPathFor 为多份配置派生各自的调试输出路径，避免后一份覆盖前一份。
func debugPathFor(base string, idx, total int) string {
	if base == "" || total <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(base, ext), idx+1, ext)
}

// registerFonts 注册常规与加粗两个字重。注册是进程级幂等操作，必须先于任何文本绘制。
func registerFonts() error {
	if err := fonts.Register(fontFamilyName, canvas.FontRegular, fontRegularPath); err != nil {
		return err
	}
	return fonts.Register(fontFamilyName, canvas.FontBold, fontBoldPath)
}

// run 串联默认值合并、布局与渲染，返回实际写入的输出路径。
func run(cfg poster.Config, data any, debugPath string, r renderer.Renderer) (string, error) {
	if r == nil {
		return "", fmt.Errorf("renderer 不能为空")
	}

	l, err := poster.Build(cfg.ApplyDefaults(), data)
	if err != nil {
		return "", fmt.Errorf("布局计算失败: %w", err)
	}

	if debugPath != "" {
		if err := poster.WriteDebugJSON(l, debugPath); err != nil {
			return "", fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	pngBytes, err := r.Render(l)
	if err != nil {
		return "", fmt.Errorf("渲染 PNG 失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.OutputPath), 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}
	// 目标文件已存在时静默覆盖
	if err := os.WriteFile(l.OutputPath, pngBytes, 0o644); err != nil {
		return "", fmt.Errorf("写入 PNG 文件失败: %w", err)
	}

	return l.OutputPath, nil
}

// loadConfigs 读取配置文件；未指定时返回两份内置示例配置。
func loadConfigs(configPath, outPath string) ([]poster.Config, error) {
	if configPath == "" {
		configs := exampleConfigs()
		if outPath != "" {
			for i := range configs {
				configs[i].OutputPath = outPath
			}
		}
		return configs, nil
	}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("无法打开配置文件 %s: %w", configPath, err)
	}
	var cfg poster.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", configPath, err)
	}
	if outPath != "" {
		cfg.OutputPath = outPath
	}
	return []poster.Config{cfg}, nil
}

// exampleConfigs 返回两份示例：纯色背景与背景图+二维码。
func exampleConfigs() []poster.Config {
	return []poster.Config{
		{
			Title:      "春季新品发布会",
			Subtitle:   "2026 · 上海",
			Content:    "4 月 18 日 10:00 开幕\n地点：西岸艺术中心 B 馆",
			OutputPath: "output/poster.png",
		},
		{
			BackgroundImageURL: "images/background.jpg",
			Title:              "城市夜跑嘉年华",
			Subtitle:           "滨江赛道 · 10 公里",
			Content:            "5 月 9 日 19:30 鸣枪\n扫码报名，名额有限",
			QRText:             "https://example.com/night-run",
			OutputPath:         "output/poster-image.png",
		},
	}
}
