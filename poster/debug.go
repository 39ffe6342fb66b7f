package poster

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将布局计划输出为 JSON，便于调试或可视化。
func WriteDebugJSON(l *Layout, path string) error {
	if l == nil {
		return nil
	}
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
