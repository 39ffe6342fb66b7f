package fontspec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// 本包解析 CSS 简写风格的字体描述，例如 "bold 64px Noto Sans SC"：
// 依次为可选的字重关键字、必需的像素字号、必需的字体族名（可含空格与中文）。

var (
	specLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Size", Pattern: `(?:\d+\.\d+|\d+)px`},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_-]*`},
	})

	specParser = participle.MustBuild[shorthand](
		participle.Lexer(specLexer),
		participle.Elide("Whitespace"),
	)

	weightKeywords = map[string]bool{
		"normal":    true,
		"regular":   true,
		"thin":      true,
		"light":     true,
		"medium":    true,
		"semibold":  true,
		"demibold":  true,
		"bold":      true,
		"extrabold": true,
		"black":     true,
		"italic":    true,
		"oblique":   true,
	}
)

// Spec 是解析后的字体简写：字重关键字、像素字号与字体族名。
type Spec struct {
	Family string  `json:"family"`
	SizePx float64 `json:"sizePx"`
	Weight string  `json:"weight"`
}

// shorthand 是字体简写的语法树：字号之前的标识符全部视为字重/样式关键字。
type shorthand struct {
	Style  []string    `parser:"@Ident*"`
	Size   SizeLiteral `parser:"@Size"`
	Family []string    `parser:"@Ident+"`
}

// SizeLiteral 在捕获时剥离 px 后缀并解析为浮点数。
type SizeLiteral float64

// Capture 实现 participle.Capture。
func (s *SizeLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("字号捕获缺少值")
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(values[0], "px"), 64)
	if err != nil {
		return err
	}
	*s = SizeLiteral(f)
	return nil
}

// Parse 解析字体简写字符串。省略字重时默认为 regular（Weight 为空）。
func Parse(input string) (Spec, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Spec{}, fmt.Errorf("字体描述为空")
	}

	ast, err := specParser.ParseString("", trimmed)
	if err != nil {
		return Spec{}, fmt.Errorf("解析字体描述 %q 失败: %w", input, err)
	}

	styles := make([]string, 0, len(ast.Style))
	for _, kw := range ast.Style {
		lowered := strings.ToLower(kw)
		if !weightKeywords[lowered] {
			return Spec{}, fmt.Errorf("字体描述 %q 含未知的字重关键字 %q", input, kw)
		}
		styles = append(styles, lowered)
	}

	if ast.Size <= 0 {
		return Spec{}, fmt.Errorf("字体描述 %q 的字号必须为正", input)
	}

	return Spec{
		Family: strings.Join(ast.Family, " "),
		SizePx: float64(ast.Size),
		Weight: strings.Join(styles, " "),
	}, nil
}
