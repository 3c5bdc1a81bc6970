package fonts

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/lively/markup"
)

func TestLoadBuiltin(t *testing.T) {
	data, err := Load("embed:go-bold")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(data, ForStyle(markup.FontBold)) {
		t.Fatalf("embed:go-bold 应返回粗体字体")
	}
	if _, err := Load("embed:nope"); err == nil {
		t.Fatalf("未知内置字体应报错")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, []byte("ttf"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := Load(path)
	if err != nil || string(data) != "ttf" {
		t.Fatalf("读取字体文件失败: %q %v", data, err)
	}
}

func TestBuiltinCoversEveryStyle(t *testing.T) {
	if got := len(Builtin()); got != 4 {
		t.Fatalf("expected 4 styles, got %d", got)
	}
}
