package format

import (
	"sync"
	"testing"

	"github.com/jsvensson/xcolor/internal/color"
)

func TestTemplateRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		color    color.Color
		want     string
	}{
		{"lowercase hex", "#%{02hr}%{02hg}%{02hb}", color.New(255, 0, 255), "#ff00ff"},
		{"uppercase hex", "#%{02Hr}%{02Hg}%{02Hb}", color.New(0, 255, 0), "#00FF00"},
		{"rgb function", "rgb(%{r}, %{g}, %{b})", color.New(255, 255, 255), "rgb(255, 255, 255)"},
		{"semicolons", "%{r};%{g};%{b}", color.New(0, 0, 0), "0;0;0"},
		{"commas", "%{r}, %{g}, %{b}", color.New(0, 0, 0), "0, 0, 0"},
		{"dash padding", "Green: %{-4g}", color.New(0, 7, 0), "Green: ---7"},
		{"binary padding", "%{016Br}", color.New(3, 0, 0), "0000000000000011"},
		{"octal", "%{or}", color.New(8, 0, 0), "10"},
		{"escape", "100%%", color.New(0, 0, 0), "100%"},
		{"escape before expansion", "%%%{r}", color.New(9, 0, 0), "%9"},
		{"pad never truncates", "%{02Br}", color.New(255, 0, 0), "11111111"},
		{"alpha not exposed", "%{r}%{g}%{b}", color.Color{A: 9, R: 1, G: 2, B: 3}, "123"},
		{"empty template", "", color.New(1, 2, 3), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Parse(tt.template)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.template, err)
			}
			if got := tmpl.Render(tt.color); got != tt.want {
				t.Errorf("Render(%v) = %q, want %q", tt.color, got, tt.want)
			}
		})
	}
}

func TestTemplateRenderIsPure(t *testing.T) {
	tmpl := MustParse("#%{02hr}%{02hg}%{02hb} %{-8Bg}")
	c := color.New(0x12, 0x34, 0x56)

	first := tmpl.Render(c)
	for i := 0; i < 10; i++ {
		if got := tmpl.Render(c); got != first {
			t.Fatalf("Render = %q, previously %q", got, first)
		}
	}

	other := tmpl.Render(color.New(0xff, 0xff, 0xff))
	if other == first {
		t.Errorf("Render of different colors returned the same output %q", other)
	}
	if got := tmpl.Render(c); got != first {
		t.Errorf("Render after other color = %q, want %q", got, first)
	}
}

func TestTemplateRenderConcurrent(t *testing.T) {
	tmpl := MustParse("%{r}-%{02hg}-%{03ob}")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v uint8) {
			defer wg.Done()
			c := color.New(v, v, v)
			want := Decimal.Format(v) + "-" + Pad{Fill: '0', Width: 2}.Apply(LowerHex.Format(v)) + "-" + Pad{Fill: '0', Width: 3}.Apply(Octal.Format(v))
			if got := tmpl.Render(c); got != want {
				t.Errorf("Render(%v) = %q, want %q", c, got, want)
			}
		}(uint8(i * 5))
	}
	wg.Wait()
}

func TestTemplateNodesIsCopy(t *testing.T) {
	tmpl := MustParse("a%{r}")
	nodes := tmpl.Nodes()
	nodes[0] = Literal("changed")

	if got := tmpl.Render(color.New(1, 0, 0)); got != "a1" {
		t.Errorf("Render after modifying Nodes() = %q, want %q", got, "a1")
	}
}
