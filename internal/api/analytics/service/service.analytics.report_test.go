package analyticsvc

import (
	"testing"

	analyticsdto "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/dto"
)

func TestWindowPhrase(t *testing.T) {
	cases := []struct {
		windowID string
		want     string
	}{
		{"1D", "day"},
		{"7D", "7 days"},
		{"30D", "30 days"},
		{"180D", "180 days"},
		{"1Y", "year"},
		{"5Y", "5 years"},
		{"ALL", "full history"},
		{"", "selected period"},
	}
	for _, tc := range cases {
		w := &analyticsdto.ReportWindow{WindowID: tc.windowID}
		if got := windowPhrase(w); got != tc.want {
			t.Errorf("windowPhrase(%q) = %q, muốn %q", tc.windowID, got, tc.want)
		}
	}
}
