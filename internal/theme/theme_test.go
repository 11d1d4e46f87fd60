package theme

import (
	"strings"
	"testing"

	"github.com/Rabee-Omran/Auto-Photo-Saver-App/internal/netstate"
)

func TestCategoryColorsDistinct(t *testing.T) {
	seen := make(map[string]netstate.Category)
	for _, c := range netstate.Categories() {
		color := string(CategoryColor(c))
		if prev, ok := seen[color]; ok {
			t.Errorf("%s and %s share color %s", prev, c, color)
		}
		seen[color] = c
	}
	if CategoryColor(netstate.Category(42)) != ColorDefault {
		t.Error("unknown category should use the default color")
	}
}

func TestCategoryBadge(t *testing.T) {
	for _, c := range netstate.Categories() {
		if got := CategoryBadge(c); !strings.Contains(got, c.String()) {
			t.Errorf("CategoryBadge(%s) = %q, missing name", c, got)
		}
	}
}
