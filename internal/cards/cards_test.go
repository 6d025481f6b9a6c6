package cards

import (
	"strings"
	"testing"

	"github.com/arcana-labs/reportwriter/internal/dates"
	"github.com/arcana-labs/reportwriter/internal/models"
)

func TestBirthCardDeterministic(t *testing.T) {
	d := dates.Date{Year: 1990, Month: 7, Day: 4}
	first := BirthCard(d)
	for i := 0; i < 10; i++ {
		if got := BirthCard(d); got != first {
			t.Fatalf("BirthCard not deterministic: %v vs %v", got, first)
		}
	}
	if first.Rank == "" || first.Suit == "" {
		t.Errorf("BirthCard = %+v, want a full card", first)
	}
}

func TestLifePathRange(t *testing.T) {
	for year := 1900; year <= 2030; year += 7 {
		for month := 1; month <= 12; month++ {
			d := dates.Date{Year: year, Month: month, Day: (month*3)%28 + 1}
			if p := LifePath(d); p < 1 || p > 9 {
				t.Fatalf("LifePath(%v) = %d, want 1-9", d, p)
			}
		}
	}
}

func TestGenerate(t *testing.T) {
	ada := Subject{Name: "Ada", Birth: dates.Date{Year: 1990, Month: 7, Day: 4}, Age: 34}
	bob := Subject{Name: "Bob", Birth: dates.Date{Year: 1988, Month: 2, Day: 29}, Age: 36}

	tests := []struct {
		name    string
		typ     models.ReportType
		partner *Subject
		want    []string
	}{
		{"yearly", models.ReportYearly, nil, []string{"Yearly Report for Ada", "age 34"}},
		{"life", models.ReportLife, nil, []string{"Life Report for Ada", "life path number"}},
		{"relationship", models.ReportRelationship, &bob, []string{"Ada and Bob", "carries the"}},
		{"financial", models.ReportFinancial, nil, []string{"Financial Report for Ada"}},
		{"singles", models.ReportSingles, nil, []string{"Singles Report for Ada"}},
		{"childrens", models.ReportChildrens, nil, []string{"Children's Life Report for Ada"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.typ, ada, tt.partner)
			if got == "" {
				t.Fatal("Generate returned empty content")
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("Generate(%s) missing %q in:\n%s", tt.typ, want, got)
				}
			}
		})
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(""); got != 1 {
		t.Errorf("EstimateTokens(empty) = %d, want minimum 1", got)
	}
	if got := EstimateTokens(strings.Repeat("a", 400)); got != 100 {
		t.Errorf("EstimateTokens(400 chars) = %d, want 100", got)
	}
}
