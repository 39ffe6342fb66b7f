package fonts

import (
	"fmt"
	"image/color"
	"os"
	"sync"

	"github.com/tdewolff/canvas"
)

// 本包维护进程级的字体注册表。字体注册是渲染前的一次性副作用：
// 同一 family+style 重复注册是无害的幂等操作，首次成功加载后直接命中缓存。

// Registry 按字体族缓存已加载的 canvas 字体。
type Registry struct {
	mu       sync.Mutex
	families map[string]*canvas.FontFamily
	loaded   map[string]bool // family|style
}

// NewRegistry 创建一个空的字体注册表。
func NewRegistry() *Registry {
	return &Registry{
		families: map[string]*canvas.FontFamily{},
		loaded:   map[string]bool{},
	}
}

var defaultRegistry = NewRegistry()

// Default 返回进程级默认注册表。
func Default() *Registry { return defaultRegistry }

// Register 等价于 Default().Register。
func Register(family string, style canvas.FontStyle, path string) error {
	return defaultRegistry.Register(family, style, path)
}

// Register 从磁盘读取 TTF 文件并加载到指定字体族。
// 已加载过的 family+style 组合直接返回 nil。
func (r *Registry) Register(family string, style canvas.FontStyle, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := loadKey(family, style)
	if r.loaded[key] {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取字体文件 %s 失败: %w", path, err)
	}

	fam, ok := r.families[family]
	if !ok {
		fam = canvas.NewFontFamily(family)
	}
	if err := fam.LoadFont(data, 0, style); err != nil {
		return fmt.Errorf("加载字体 %s（%s）失败: %w", family, path, err)
	}

	r.families[family] = fam
	r.loaded[key] = true
	return nil
}

// Face 返回指定字号（pt）、颜色与字重的字体面；family+style 组合未注册时报错，
// 不依赖 canvas 的字重替换。
func (r *Registry) Face(family string, sizePt float64, col color.Color, style canvas.FontStyle) (*canvas.FontFace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fam, ok := r.families[family]
	if !ok {
		return nil, fmt.Errorf("字体族 %s 未注册", family)
	}
	if !r.loaded[loadKey(family, style)] {
		return nil, fmt.Errorf("字体族 %s 未加载所需字重", family)
	}
	return fam.Face(sizePt, col, style, canvas.FontNormal), nil
}

// Registered 报告 family+style 是否已成功加载。
func (r *Registry) Registered(family string, style canvas.FontStyle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded[loadKey(family, style)]
}

func loadKey(family string, style canvas.FontStyle) string {
	return fmt.Sprintf("%s|%d", family, int(style))
}
