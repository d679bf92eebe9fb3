package domain

import "fmt"

// FortuneColors is the fixed palette a generated fortune may use.
var FortuneColors = []string{
	"text-green-400",
	"text-yellow-300",
	"text-blue-300",
	"text-orange-400",
	"text-red-400",
	"text-cyan-300",
	"text-purple-400",
	"text-pink-400",
}

func IsFortuneColor(c string) bool {
	for _, v := range FortuneColors {
		if c == v {
			return true
		}
	}
	return false
}

// FortuneItem is one labeled category of trading-luck content.
// Yi holds the "do" actions, Ji the "don't" actions.
type FortuneItem struct {
	Text  string   `json:"text"`
	Color string   `json:"color"`
	Yi    []string `json:"yi"`
	Ji    []string `json:"ji"`
	Score int      `json:"score"`
}

// Validate enforces the structural contract: color from the fixed palette,
// score in [1,100], and 2-4 entries in each of the yi/ji lists.
func (f *FortuneItem) Validate() error {
	if f.Text == "" {
		return fmt.Errorf("fortune text is empty")
	}
	if !IsFortuneColor(f.Color) {
		return fmt.Errorf("fortune color %q not in palette", f.Color)
	}
	if f.Score < 1 || f.Score > 100 {
		return fmt.Errorf("fortune score %d out of range [1,100]", f.Score)
	}
	if n := len(f.Yi); n < 2 || n > 4 {
		return fmt.Errorf("fortune yi list has %d items, want 2-4", n)
	}
	if n := len(f.Ji); n < 2 || n > 4 {
		return fmt.Errorf("fortune ji list has %d items, want 2-4", n)
	}
	return nil
}

// GeneratedContent is the caller-visible unit of fortune content. Every
// instance handed out by the generator satisfies Validate, whether it came
// from the model or from the bundled fallback set.
type GeneratedContent struct {
	Fortunes []FortuneItem `json:"fortunes"`
	Proverbs []string      `json:"proverbs"`
}

func (g *GeneratedContent) Validate() error {
	if len(g.Fortunes) == 0 {
		return fmt.Errorf("no fortunes")
	}
	if len(g.Proverbs) == 0 {
		return fmt.Errorf("no proverbs")
	}
	for i := range g.Fortunes {
		if err := g.Fortunes[i].Validate(); err != nil {
			return fmt.Errorf("fortune %d: %w", i, err)
		}
	}
	for i, p := range g.Proverbs {
		if p == "" {
			return fmt.Errorf("proverb %d is empty", i)
		}
	}
	return nil
}
