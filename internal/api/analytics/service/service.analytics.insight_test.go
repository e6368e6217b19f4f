// Package analyticsvc - Test InsightGenerator: thang ngưỡng doanh thu, cảnh báo lượt khách
// và câu nhận định dịch vụ nổi bật.
package analyticsvc

import (
	"strings"
	"testing"

	analyticsdto "github.com/clainchege2/Salon-Assistant-sub002/internal/api/analytics/dto"
)

func revenueInsightFor(t *testing.T, current, previous float64) analyticsdto.InsightStatement {
	t.Helper()
	g := NewInsightGenerator()
	insights := g.GenerateInsights(
		analyticsdto.PeriodTotals{Revenue: current, VisitCount: 10},
		analyticsdto.PeriodTotals{Revenue: previous, VisitCount: 10},
		"30 days",
	)
	if len(insights) == 0 {
		t.Fatal("GenerateInsights phải trả về ít nhất 1 câu")
	}
	if insights[0].Category != analyticsdto.InsightCategoryRevenue {
		t.Fatalf("Câu đầu tiên phải là revenue, nhận %s", insights[0].Category)
	}
	return insights[0]
}

func TestRevenueInsight_Thresholds(t *testing.T) {
	cases := []struct {
		name         string
		current      float64
		previous     float64
		wantContains string
		wantSeverity analyticsdto.InsightSeverity
	}{
		{"tăng vọt trên 15%", 120, 100, "surged", analyticsdto.SeverityPositive},
		{"tăng ổn định (5, 15]", 110, 100, "steady", analyticsdto.SeverityPositive},
		{"đúng biên 15% rơi về mức thấp hơn", 115, 100, "steady", analyticsdto.SeverityPositive},
		{"tăng nhẹ (0, 5]", 103, 100, "up", analyticsdto.SeverityPositive},
		{"giảm nhẹ [-5, 0)", 97, 100, "dipped", analyticsdto.SeverityInfo},
		{"đúng biên -5% vẫn là giảm nhẹ", 95, 100, "dipped", analyticsdto.SeverityInfo},
		{"giảm mạnh dưới -5%", 80, 100, "dropped", analyticsdto.SeverityWarning},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := revenueInsightFor(t, tc.current, tc.previous)
			if !strings.Contains(got.Text, tc.wantContains) {
				t.Errorf("Text = %q, phải chứa %q", got.Text, tc.wantContains)
			}
			if got.Severity != tc.wantSeverity {
				t.Errorf("Severity = %s, muốn %s", got.Severity, tc.wantSeverity)
			}
		})
	}
}

func TestRevenueInsight_NoBaseline(t *testing.T) {
	got := revenueInsightFor(t, 500, 0)
	if !strings.Contains(got.Text, "Not enough prior data") {
		t.Errorf("Kỳ trước = 0 phải ra câu chưa đủ dữ liệu, nhận %q", got.Text)
	}
	if got.Severity != analyticsdto.SeverityInfo {
		t.Errorf("Severity = %s, muốn info", got.Severity)
	}
	// Không được chứa con số % bịa ra
	if strings.Contains(got.Text, "%") {
		t.Errorf("Câu chưa đủ dữ liệu không được chứa %%: %q", got.Text)
	}
}

func TestVisitActivityInsight_Thresholds(t *testing.T) {
	g := NewInsightGenerator()

	activityInsight := func(t *testing.T, insights []analyticsdto.InsightStatement) analyticsdto.InsightStatement {
		t.Helper()
		var found []analyticsdto.InsightStatement
		for _, ins := range insights {
			if ins.Category == analyticsdto.InsightCategoryWarning {
				found = append(found, ins)
			}
		}
		if len(found) != 1 {
			t.Fatalf("Phải có đúng 1 câu activity, nhận %d", len(found))
		}
		return found[0]
	}

	// Giảm 20% -> cảnh báo
	got := activityInsight(t, g.GenerateInsights(
		analyticsdto.PeriodTotals{Revenue: 100, VisitCount: 80},
		analyticsdto.PeriodTotals{Revenue: 100, VisitCount: 100},
		"30 days",
	))
	if got.Severity != analyticsdto.SeverityWarning {
		t.Errorf("Giảm 20%% lượt khách phải là warning, nhận %s", got.Severity)
	}
	if !strings.Contains(got.Text, "fell") {
		t.Errorf("Câu cảnh báo phải nêu mức giảm: %q", got.Text)
	}

	// Giảm đúng 10% -> chưa kích hoạt, câu trung tính
	got = activityInsight(t, g.GenerateInsights(
		analyticsdto.PeriodTotals{Revenue: 100, VisitCount: 90},
		analyticsdto.PeriodTotals{Revenue: 100, VisitCount: 100},
		"30 days",
	))
	if got.Severity != analyticsdto.SeverityInfo {
		t.Errorf("Giảm đúng 10%% phải ra câu trung tính info, nhận %s", got.Severity)
	}
	if !strings.Contains(got.Text, "No concerns") {
		t.Errorf("Câu trung tính phải nói không có gì đáng lo: %q", got.Text)
	}

	// Kỳ trước 0 lượt -> không có baseline, câu trung tính
	got = activityInsight(t, g.GenerateInsights(
		analyticsdto.PeriodTotals{Revenue: 100, VisitCount: 5},
		analyticsdto.PeriodTotals{Revenue: 100, VisitCount: 0},
		"30 days",
	))
	if got.Severity != analyticsdto.SeverityInfo {
		t.Errorf("Kỳ trước 0 lượt phải ra câu trung tính info, nhận %s", got.Severity)
	}
}

func TestTrendInsight(t *testing.T) {
	g := NewInsightGenerator()

	// Có dịch vụ nổi bật: câu trend phải nêu tên dịch vụ
	insights := g.GenerateInsights(
		analyticsdto.PeriodTotals{Revenue: 500, VisitCount: 10, TopService: "Coloring", TopServiceVisits: 4},
		analyticsdto.PeriodTotals{Revenue: 400, VisitCount: 9},
		"7 days",
	)
	var trend *analyticsdto.InsightStatement
	for i := range insights {
		if insights[i].Category == analyticsdto.InsightCategoryTrend {
			trend = &insights[i]
		}
	}
	if trend == nil {
		t.Fatal("Thiếu câu trend")
	}
	if !strings.Contains(trend.Text, "Coloring") {
		t.Errorf("Câu trend phải nêu tên dịch vụ: %q", trend.Text)
	}

	// Không có dịch vụ: câu gợi ý chung
	insights = g.GenerateInsights(
		analyticsdto.PeriodTotals{Revenue: 500, VisitCount: 10},
		analyticsdto.PeriodTotals{Revenue: 400, VisitCount: 9},
		"7 days",
	)
	trend = nil
	for i := range insights {
		if insights[i].Category == analyticsdto.InsightCategoryTrend {
			trend = &insights[i]
		}
	}
	if trend == nil {
		t.Fatal("Thiếu câu trend khi không có dịch vụ nổi bật")
	}
	if trend.Severity != analyticsdto.SeverityInfo {
		t.Errorf("Câu trend chung phải là info, nhận %s", trend.Severity)
	}
}

// Cùng đầu vào phải luôn cho cùng danh sách câu.
func TestGenerateInsights_Deterministic(t *testing.T) {
	g := NewInsightGenerator()
	current := analyticsdto.PeriodTotals{Revenue: 1234.5, VisitCount: 42, TopService: "Haircut", TopServiceVisits: 20}
	previous := analyticsdto.PeriodTotals{Revenue: 1000, VisitCount: 50}

	first := g.GenerateInsights(current, previous, "90 days")
	second := g.GenerateInsights(current, previous, "90 days")
	if len(first) != len(second) {
		t.Fatalf("Hai lần sinh ra số câu khác nhau: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Câu %d khác nhau giữa hai lần sinh: %+v vs %+v", i, first[i], second[i])
		}
	}
}
