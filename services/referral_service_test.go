package services

import (
	"testing"

	"github.com/google/uuid"
)

type fakeTree map[uuid.UUID][]ReferralNode

func (f fakeTree) children(id uuid.UUID) []ReferralNode {
	return f[id]
}

func node(earnings int64) ReferralNode {
	return ReferralNode{ID: uuid.New(), TaskEarnings: earnings}
}

func TestBuildReferralSummaryNoChildren(t *testing.T) {
	root := uuid.New()
	summary := BuildReferralSummary(root, fakeTree{}.children, [3]int{15, 5, 2})

	if summary.TotalReferrals != 0 {
		t.Errorf("TotalReferrals = %d, want 0", summary.TotalReferrals)
	}
	if summary.TotalCommission != 0 {
		t.Errorf("TotalCommission = %d, want 0", summary.TotalCommission)
	}
	if len(summary.Levels) != 3 {
		t.Fatalf("len(Levels) = %d, want 3", len(summary.Levels))
	}
	for _, lvl := range summary.Levels {
		if lvl.Count != 0 || lvl.Earnings != 0 || lvl.Commission != 0 {
			t.Errorf("level %d not zero: %+v", lvl.Level, lvl)
		}
	}
}

// root -> a(1000), b(2000); a -> c(3000); c -> d(500); d -> e(9999, depth 4)
func buildTestTree() (uuid.UUID, fakeTree) {
	root := uuid.New()
	a := node(1000)
	b := node(2000)
	c := node(3000)
	d := node(500)
	e := node(9999)

	tree := fakeTree{
		root: {a, b},
		a.ID: {c},
		c.ID: {d},
		d.ID: {e},
	}
	return root, tree
}

func TestBuildReferralSummaryLevels(t *testing.T) {
	root, tree := buildTestTree()
	summary := BuildReferralSummary(root, tree.children, [3]int{15, 5, 2})

	wantLevels := []struct {
		count      int
		earnings   int64
		commission int64
	}{
		{count: 2, earnings: 3000, commission: 450}, // 3000 * 15%
		{count: 1, earnings: 3000, commission: 150}, // 3000 * 5%
		{count: 1, earnings: 500, commission: 10},   // 500 * 2%
	}

	if summary.TotalReferrals != 4 {
		t.Errorf("TotalReferrals = %d, want 4 (depth 4 must be excluded)", summary.TotalReferrals)
	}
	for i, want := range wantLevels {
		got := summary.Levels[i]
		if got.Level != i+1 {
			t.Errorf("Levels[%d].Level = %d, want %d", i, got.Level, i+1)
		}
		if got.Count != want.count {
			t.Errorf("level %d count = %d, want %d", i+1, got.Count, want.count)
		}
		if got.Earnings != want.earnings {
			t.Errorf("level %d earnings = %d, want %d", i+1, got.Earnings, want.earnings)
		}
		if got.Commission != want.commission {
			t.Errorf("level %d commission = %d, want %d", i+1, got.Commission, want.commission)
		}
	}
	if summary.TotalCommission != 450+150+10 {
		t.Errorf("TotalCommission = %d, want %d", summary.TotalCommission, 450+150+10)
	}
}

// Changing one level's rate must only move that level's contribution.
func TestBuildReferralSummaryRateLinearity(t *testing.T) {
	root, tree := buildTestTree()

	base := BuildReferralSummary(root, tree.children, [3]int{15, 5, 2})
	bumped := BuildReferralSummary(root, tree.children, [3]int{15, 10, 2})

	if bumped.Levels[0].Commission != base.Levels[0].Commission {
		t.Errorf("level 1 commission moved: %d -> %d", base.Levels[0].Commission, bumped.Levels[0].Commission)
	}
	if bumped.Levels[2].Commission != base.Levels[2].Commission {
		t.Errorf("level 3 commission moved: %d -> %d", base.Levels[2].Commission, bumped.Levels[2].Commission)
	}
	if bumped.Levels[1].Commission != 2*base.Levels[1].Commission {
		t.Errorf("level 2 commission = %d, want %d (rate doubled)", bumped.Levels[1].Commission, 2*base.Levels[1].Commission)
	}
	wantTotal := base.TotalCommission + base.Levels[1].Commission
	if bumped.TotalCommission != wantTotal {
		t.Errorf("TotalCommission = %d, want %d", bumped.TotalCommission, wantTotal)
	}
}
