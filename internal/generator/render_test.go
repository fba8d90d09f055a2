package generator_test

import (
	"strings"
	"testing"

	"github.com/xcforge/xcforge/internal/generator"
)

func TestRenderString(t *testing.T) {
	r := generator.NewRenderer()

	out, err := r.RenderString("greeting", "Hello {{ .Name }}", map[string]string{"Name": "World"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if string(out) != "Hello World" {
		t.Errorf("got %q, want %q", out, "Hello World")
	}
}

func TestRenderString_CachedTemplateStillRenders(t *testing.T) {
	r := generator.NewRenderer()

	first, err := r.RenderString("t", "{{ .V }}", map[string]string{"V": "one"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	second, err := r.RenderString("t", "{{ .V }}", map[string]string{"V": "two"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if string(first) != "one" || string(second) != "two" {
		t.Errorf("cache broke rendering: %q, %q", first, second)
	}
}

func TestRenderString_ParseError(t *testing.T) {
	r := generator.NewRenderer()

	_, err := r.RenderString("bad", "{{ .Unclosed", nil)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "bad") {
		t.Errorf("error should name the template: %v", err)
	}
}

func TestXMLHelper(t *testing.T) {
	r := generator.NewRenderer()

	out, err := r.RenderString("xml", "{{ xml .V }}", map[string]string{"V": `needs <mic> & "speech"`})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(string(out), "<mic>") {
		t.Errorf("xml helper did not escape: %q", out)
	}
	if !strings.Contains(string(out), "&amp;") {
		t.Errorf("ampersand not escaped: %q", out)
	}
}
