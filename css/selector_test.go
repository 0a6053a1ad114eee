package css

import (
	"testing"

	"nsx/common"
)

func TestNormalizeSelector(t *testing.T) {
	scoped := common.Important{Enabled: true, Scope: "#app"}

	tests := []struct {
		name      string
		raw       string
		important common.Important
		want      string
	}{
		{"class", ".p-4", common.Important{}, "p-4"},
		{"element", "h1", common.Important{}, "h1"},
		{"whitespace", "  .m-2 ", common.Important{}, "m-2"},
		{"escaped colon", `.hover\:bg-red`, common.Important{}, "hover:bg-red"},
		{"escaped slash", `.w-1\/2`, common.Important{}, "w-1/2"},
		{"escaped dot", `.mt-0\.5`, common.Important{}, "mt-0.5"},
		{"bool important keeps key", ".p-4", common.Important{Enabled: true}, "p-4"},
		{"scope stripped", "#app .p-4", scoped, "p-4"},
		{"scope child combinator", "#app > .p-4", scoped, "p-4"},
		{"scope child combinator tight", "#app>.p-4", scoped, "p-4"},
		{"scope child combinator left space", "#app >.p-4", scoped, "p-4"},
		{"scope alone", "#app", scoped, "#app"},
		{"scope not matching", "#root .p-4", scoped, "#root .p-4"},
		{"scope prefix of id", "#application", scoped, "#application"},
		{"only first dot", ".a.b", common.Important{}, "a.b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSelector(tt.raw, tt.important); got != tt.want {
				t.Errorf("NormalizeSelector(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
