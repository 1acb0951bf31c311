package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/scorebook/internal/scoring"
)

func TestOvers_Encoding(t *testing.T) {
	t.Parallel()

	cases := []struct {
		legal int
		want  float64
	}{
		{0, 0.0},
		{1, 0.1},
		{5, 0.5},
		{6, 1.0},
		{7, 1.1},
		{112, 18.4},
		{120, 20.0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, scoring.Overs(tc.legal), 1e-9, "legal=%d", tc.legal)
	}
}

func TestOvers_FractionNeverReachesSix(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 300; n++ {
		overs := scoring.Overs(n)
		whole := float64(n / 6)
		assert.InDelta(t, whole+float64(n%6)/10, overs, 1e-9)
		assert.Less(t, overs-whole, 0.55, "legal=%d", n)
		assert.Equal(t, n/6, scoring.CurrentOver(n))
		assert.Equal(t, n%6, scoring.BallInOver(n))
	}
}

func TestBallType_IsLegal(t *testing.T) {
	t.Parallel()

	assert.True(t, scoring.BallNormal.IsLegal())
	assert.True(t, scoring.BallWicket.IsLegal())
	assert.True(t, scoring.BallBye.IsLegal())
	assert.True(t, scoring.BallLegBye.IsLegal())
	assert.False(t, scoring.BallWide.IsLegal())
	assert.False(t, scoring.BallNoBall.IsLegal())
}

func TestParseDelivery(t *testing.T) {
	t.Parallel()

	d, err := scoring.ParseDelivery("", 2, false, "")
	require.NoError(t, err)
	assert.Equal(t, scoring.Normal{RunsScored: 2}, d)

	d, err = scoring.ParseDelivery(scoring.BallWide, 1, false, "")
	require.NoError(t, err)
	assert.Equal(t, scoring.BallWide, d.Stored())

	d, err = scoring.ParseDelivery(scoring.BallWicket, 0, false, scoring.WicketBowled)
	require.NoError(t, err)
	assert.True(t, d.IsWicket())
	assert.Equal(t, scoring.BallNormal, d.Stored())

	d, err = scoring.ParseDelivery(scoring.BallBye, 1, true, scoring.WicketRunOut)
	require.NoError(t, err)
	assert.Equal(t, scoring.Wicket{RunsScored: 1, Type: scoring.WicketRunOut}, d)

	_, err = scoring.ParseDelivery(scoring.BallWicket, 0, true, "")
	assert.ErrorIs(t, err, scoring.ErrWicketTypeRequired)

	_, err = scoring.ParseDelivery(scoring.BallNormal, 0, true, "handled")
	assert.ErrorIs(t, err, scoring.ErrUnknownWicketType)

	_, err = scoring.ParseDelivery("beamer", 0, false, "")
	assert.ErrorIs(t, err, scoring.ErrUnknownBallType)

	_, err = scoring.ParseDelivery(scoring.BallNormal, -1, false, "")
	assert.ErrorIs(t, err, scoring.ErrNegativeRuns)

	_, err = scoring.ParseDelivery(scoring.BallNormal, 8, false, "")
	assert.ErrorIs(t, err, scoring.ErrTooManyRuns)
}

func TestDeltaFor_Wide(t *testing.T) {
	t.Parallel()

	d := scoring.DeltaFor(scoring.BallWide, 1, false)
	assert.Equal(t, scoring.Delta{Runs: 2, Extras: 2, Wides: 2}, d)
}

func TestDeltaFor_NoBall(t *testing.T) {
	t.Parallel()

	d := scoring.DeltaFor(scoring.BallNoBall, 4, false)
	assert.Equal(t, scoring.Delta{Runs: 5, Extras: 1, NoBalls: 1}, d)
}

func TestDeltaFor_ByesAndNormal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, scoring.Delta{Runs: 2, Extras: 2, Byes: 2, LegalBalls: 1}, scoring.DeltaFor(scoring.BallBye, 2, false))
	assert.Equal(t, scoring.Delta{Runs: 3, Extras: 3, LegByes: 3, LegalBalls: 1}, scoring.DeltaFor(scoring.BallLegBye, 3, false))
	assert.Equal(t, scoring.Delta{Runs: 6, LegalBalls: 1}, scoring.DeltaFor(scoring.BallNormal, 6, false))
	assert.Equal(t, scoring.Delta{Wickets: 1, LegalBalls: 1}, scoring.DeltaOf(scoring.Wicket{Type: scoring.WicketCaught}))
}

func TestTotals_ExtrasConservation(t *testing.T) {
	t.Parallel()

	seq := []scoring.Delivery{
		scoring.Wide{RunsScored: 0},
		scoring.NoBall{RunsScored: 4},
		scoring.Bye{RunsScored: 2},
		scoring.LegBye{RunsScored: 1},
		scoring.Normal{RunsScored: 3},
		scoring.Wide{RunsScored: 4},
		scoring.Wicket{Type: scoring.WicketLBW},
	}

	var tot scoring.Totals
	for _, d := range seq {
		var err error
		tot, err = tot.Apply(scoring.DeltaOf(d))
		require.NoError(t, err)
		assert.Equal(t, tot.Wides+tot.NoBalls+tot.Byes+tot.LegByes, tot.Extras)
	}

	assert.Equal(t, 1+5+2+1+3+5+0, tot.Runs)
	assert.Equal(t, 4, tot.LegalBalls)
	assert.Equal(t, 1, tot.Wickets)
}

func TestTotals_RevertIsInverse(t *testing.T) {
	t.Parallel()

	base := scoring.Totals{Runs: 87, Wickets: 3, LegalBalls: 50, Extras: 9, Wides: 4, NoBalls: 2, Byes: 2, LegByes: 1}
	deliveries := []scoring.Delivery{
		scoring.Normal{RunsScored: 4},
		scoring.Wide{RunsScored: 2},
		scoring.NoBall{RunsScored: 6},
		scoring.Bye{RunsScored: 1},
		scoring.LegBye{RunsScored: 2},
		scoring.Wicket{RunsScored: 1, Type: scoring.WicketRunOut},
	}
	for _, d := range deliveries {
		delta := scoring.DeltaOf(d)
		applied, err := base.Apply(delta)
		require.NoError(t, err)
		assert.Equal(t, base, applied.Revert(delta), "%T", d)
	}
}

func TestTotals_RevertFloorsAtZero(t *testing.T) {
	t.Parallel()

	got := scoring.Totals{Runs: 1}.Revert(scoring.DeltaFor(scoring.BallWide, 3, true))
	assert.Equal(t, scoring.Totals{}, got)
}

func TestTotals_ApplyRefusesEleventhWicket(t *testing.T) {
	t.Parallel()

	_, err := scoring.Totals{Wickets: 10}.Apply(scoring.DeltaOf(scoring.Wicket{Type: scoring.WicketBowled}))
	assert.ErrorIs(t, err, scoring.ErrAllOut)
}

func TestInningsOver(t *testing.T) {
	t.Parallel()

	assert.False(t, scoring.InningsOver(scoring.Totals{LegalBalls: 119, Wickets: 9}, 20))
	assert.True(t, scoring.InningsOver(scoring.Totals{LegalBalls: 120}, 20))
	assert.True(t, scoring.InningsOver(scoring.Totals{Wickets: 10}, 20))
}

func TestDecide(t *testing.T) {
	t.Parallel()

	out := scoring.Decide(scoring.Totals{Runs: 150, Wickets: 10}, scoring.Totals{Runs: 151, Wickets: 3})
	assert.Equal(t, scoring.Outcome{Winner: scoring.SecondInnings, Summary: "Won by 7 wickets"}, out)

	out = scoring.Decide(scoring.Totals{Runs: 150, Wickets: 10}, scoring.Totals{Runs: 140, Wickets: 10})
	assert.Equal(t, scoring.Outcome{Winner: scoring.FirstInnings, Summary: "Won by 10 runs"}, out)

	out = scoring.Decide(scoring.Totals{Runs: 150}, scoring.Totals{Runs: 149, Wickets: 10})
	assert.Equal(t, "Won by 1 run", out.Summary)

	out = scoring.Decide(scoring.Totals{Runs: 120}, scoring.Totals{Runs: 121, Wickets: 9})
	assert.Equal(t, "Won by 1 wicket", out.Summary)

	out = scoring.Decide(scoring.Totals{Runs: 99}, scoring.Totals{Runs: 99})
	assert.Equal(t, scoring.Outcome{Winner: scoring.Tie, Summary: scoring.TiedSummary}, out)
}

func TestRequiredRunRate(t *testing.T) {
	t.Parallel()

	rate := scoring.RequiredRunRate(151, 100, 20, 90)
	require.NotNil(t, rate)
	assert.InDelta(t, 10.2, *rate, 1e-9)

	rate = scoring.RequiredRunRate(101, 50, 20, 60)
	require.NotNil(t, rate)
	assert.InDelta(t, 5.1, *rate, 1e-9)

	rate = scoring.RequiredRunRate(100, 0, 20, 113)
	require.NotNil(t, rate)
	assert.InDelta(t, 85.71, *rate, 1e-9)

	assert.Nil(t, scoring.RequiredRunRate(151, 100, 20, 120))
}
