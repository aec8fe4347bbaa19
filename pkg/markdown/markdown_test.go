package markdown

import (
	"strings"
	"testing"
)

func TestRender_Basic(t *testing.T) {
	out, err := Render("# 제품\n\nhello **world**")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<strong>world</strong>") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestRender_Image(t *testing.T) {
	out, err := Render("![logo](https://cdn.example.com/images/original/a.png)")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<img src="https://cdn.example.com/images/original/a.png"`) {
		t.Errorf("unexpected output: %s", out)
	}
}
