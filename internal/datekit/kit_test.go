package datekit

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/datekit/internal/dates"
	"github.com/aidanlsb/datekit/internal/template"
)

var fixedNow = time.Date(2010, time.July, 19, 12, 0, 0, 0, time.UTC)

func newTestKit(opts ...Option) *Kit {
	base := []Option{
		WithLocation(time.UTC),
		WithClock(func() time.Time { return fixedNow }),
	}
	return New(append(base, opts...)...)
}

func TestCreate(t *testing.T) {
	k := newTestKit()

	tests := []struct {
		name string
		args []any
		want string
	}{
		{"no args is now", nil, "2010-07-19T12:00:00.000Z"},
		{"nil is now", []any{nil}, "2010-07-19T12:00:00.000Z"},
		{"epoch millis", []any{int64(0)}, "1970-01-01T00:00:00.000Z"},
		{"float millis", []any{1276000000000.0}, "2010-06-08T12:26:40.000Z"},
		{"time value", []any{time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)}, "2001-02-03T04:05:06.000Z"},
		{"text", []any{"2006-08-01 20:15:59"}, "2006-08-01T20:15:59.000Z"},
		{"relative text", []any{"tomorrow"}, "2010-07-20T12:00:00.000Z"},
		{"year and month", []any{2012, 5}, "2012-06-01T00:00:00.000Z"},
		{"all components", []any{2012, 5, 9, 20, 1, 2, 345}, "2012-06-09T20:01:02.345Z"},
		{"month overflow", []any{2012, 12, 1}, "2013-01-01T00:00:00.000Z"},
		{"extra components ignored", []any{2012, 5, 9, 20, 1, 2, 345, 99}, "2012-06-09T20:01:02.345Z"},
		{"unrecognized text", []any{"bogus"}, dates.InvalidText},
		{"non-numeric component", []any{2012, "june"}, dates.InvalidText},
		{"unsupported type", []any{struct{}{}}, dates.InvalidText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Create(tt.args...).String())
		})
	}
}

func TestCreatePassesDatesThrough(t *testing.T) {
	k := newTestKit()
	d := dates.Build(time.UTC, 2011, 0, 2)
	assert.Equal(t, d, k.Create(d))
	assert.Equal(t, d, k.Create(&d))
}

func TestCreateUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	k := newTestKit(WithLocation(est))

	want := k.Create(2006, 7, 1, 20, 15, 59).SetUTCOffset(0)
	got := k.CreateUTC("2006-08-01 20:15:59")
	assert.Equal(t, want.String(), got.String())
	assert.Equal(t, "2006-08-01T20:15:59.000Z", got.String())
	assert.Equal(t, "UTC", got.TimezoneName())
}

func TestComparisons(t *testing.T) {
	k := newTestKit()

	tests := []struct {
		name string
		a, b string
		unit string
		want bool
	}{
		{"equals", "2012-06-09 20:00:00", "06/09/2012 20:00:00", "", true},
		{"not equals", "2012-06-09 20:00:00", "06/09/2012 20:00:01", "", false},
		{"nearest millisecond", "2012-06-09 20:00:00", "06/09/2012 20:00:00", "millisecond", true},
		{"nearest second", "2012-06-09T20:00:00.123", "06/09/2012 20:00:00", "second", true},
		{"nearest minute", "2012-06-09 20:00:29", "06/09/2012 20:00:00", "minute", true},
		{"nearest hour", "2012-06-09 19:30:00", "06/09/2012 20:00:00", "hour", true},
		{"nearest day", "2012-06-09 21:29:29", "06/09/2012 20:00:00", "day", true},
		{"nearest month", "2012-06-09 20:00:01", "06/05/2012 20:00:01", "month", true},
		{"nearest year", "2012-06-09 20:00:00", "05/05/2012 20:00:00", "year", true},
		{"eleven am same day", "2013-09-13", "2013-09-13 11am", "day", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Equals(tt.a, tt.b, tt.unit))
		})
	}

	assert.True(t, k.IsBefore("12-16-2006", "2006-12-17", ""))
	assert.False(t, k.IsBefore("12-16-2006", "2006-12-15", ""))
	assert.True(t, k.IsBefore("2013-09-13", "2013-09-13 10:00:00", ""))
	assert.False(t, k.IsBefore("2013-09-13", "2013-09-13", ""))
	assert.True(t, k.IsAfter("2013-09-13", "2013-09-12", ""))
	assert.False(t, k.IsAfter("2013-09-13", "2013-12-21", ""))
	assert.False(t, k.Equals("bogus", "bogus", ""), "invalid dates never compare")
}

func TestDiff(t *testing.T) {
	k := newTestKit()
	assert.Equal(t, 3.0, k.Diff("2012-06-12", "2012-06-09", "day", false))
	assert.Equal(t, -72.0, k.Diff("2012-06-09", "2012-06-12", "hours", false))
	assert.Equal(t, 1.5, k.Diff("2012-06-09 12:00", "2012-06-08", "day", true))
	assert.True(t, math.IsNaN(k.Diff("bogus", "2012-06-08", "day", false)))

	_, ok := k.DiffNumber("bogus", "2012-06-08", "day", false)
	assert.False(t, ok)
	v, ok := k.DiffNumber("2012-06-10", "2012-06-08", "day", false)
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestDiffText(t *testing.T) {
	k := newTestKit()
	assert.Equal(t, "tomorrow", k.DiffText("2010-07-20 13:00:00"))
	assert.Equal(t, "3 hours ago", k.DiffText("2010-07-19 09:00:00"))
	assert.Equal(t, "in 5 days", k.DiffText("2010-07-24 12:00:00", "2010-07-19 12:00:00"))
	assert.Equal(t, "in a moment", k.DiffText(k.Now()))
	assert.Equal(t, dates.InvalidText, k.DiffText("bogus"))
}

func TestFormat(t *testing.T) {
	k := newTestKit()
	d := k.Create(2012, 5, 9, 20, 1, 2)

	assert.Equal(t, "2012-06-09", k.Format(d, "%Y-%m-%d"))
	assert.Equal(t, "June 9th, 2012", k.Format(d, "F jS, Y"))
	assert.Equal(t, dates.InvalidText, k.Format(dates.Invalid, "%Y"))

	out, err := k.FormatWith(template.SQLName, d, "yyyy-mm-dd")
	require.NoError(t, err)
	assert.Equal(t, "2012-06-09", out)

	_, err = k.FormatWith("missing", d, "Y")
	assert.Error(t, err)
}

func TestFormatDefaultTemplate(t *testing.T) {
	k := newTestKit(WithDefaultTemplate("%d/%m/%Y"))
	d := k.Create(2012, 5, 9)
	assert.Equal(t, "09/06/2012", k.Format(d, ""))
	assert.Equal(t, "2012", k.Format(d, "Y"))
}

func TestFormatFallsBackWhenDialectRemoved(t *testing.T) {
	k := newTestKit()
	require.True(t, k.Dialects().Unregister(template.StrftimeName))
	d := k.Create(2012, 5, 9)
	assert.Equal(t, "2012", k.Format(d, "%Y"))
}

func TestAutoFormat(t *testing.T) {
	k := newTestKit()

	out, ok := k.AutoFormat("tomorrow", "Y-m-d")
	assert.True(t, ok)
	assert.Equal(t, "2010-07-20", out)

	out, ok = k.AutoFormat("not a date", "Y-m-d")
	assert.False(t, ok)
	assert.Equal(t, "not a date", out)
}

func TestKitAccessors(t *testing.T) {
	k := newTestKit()
	assert.Equal(t, time.UTC, k.Location())
	assert.Equal(t, dates.English, k.Names())
	assert.Equal(t, 17, k.Patterns().Len())
	assert.Contains(t, k.Dialects().List(), template.PHPName)

	_, err := k.Parse("not a date")
	assert.Error(t, err)
}

func TestFormatReproducesParsedText(t *testing.T) {
	k := newTestKit()

	tests := []struct {
		name string
		text string
		tmpl string
	}{
		{"iso date", "2010-03-15", "%Y-%m-%d"},
		{"us date", "03/15/2010", "%m/%d/%Y"},
		{"us date with dashes", "10-28-2007", "m-d-Y"},
		{"twelve hour time", "08:15 PM", "%I:%M %p"},
		{"twelve hour time lower", "08:15 am", "%I:%M %P"},
		{"twenty four hour time with offset", "2010-11-26T12:01:05-05:00", "%Y-%m-%dT%H:%M:%S%G"},
		{"twenty four hour time", "2006-08-01 20:15:59", "Y-m-d H:i:s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := k.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.text, k.Format(d, tt.tmpl))
		})
	}
}

func TestDiffTextReproducesRelativeText(t *testing.T) {
	k := newTestKit()

	for _, text := range []string{"3 days ago", "5 hours ago", "2 weeks ago", "in 4 days", "in 10 minutes"} {
		t.Run(text, func(t *testing.T) {
			d, err := k.Parse(text)
			require.NoError(t, err)
			assert.Equal(t, text, k.DiffText(d))
		})
	}
}

func TestISORoundTripProperty(t *testing.T) {
	k := newTestKit()
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("formatting a parsed ISO date gives the same text", prop.ForAll(
		func(year, month, day int) bool {
			text := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
			d, err := k.Parse(text)
			return err == nil && k.Format(d, "%Y-%m-%d") == text
		},
		gen.IntRange(1000, 9999),
		gen.IntRange(1, 12),
		gen.IntRange(1, 28),
	))

	properties.Property("parsing a formatted date gives the same instant", prop.ForAll(
		func(year, month0, day, hour, minute, second int) bool {
			d := dates.Build(time.UTC, year, month0, day, hour, minute, second)
			got, err := k.Parse(k.Format(d, "%Y-%m-%dT%H:%M:%S%G"))
			return err == nil && got.Millis() == d.Millis()
		},
		gen.IntRange(1000, 9999),
		gen.IntRange(0, 11),
		gen.IntRange(1, 28),
		gen.IntRange(0, 23),
		gen.IntRange(0, 59),
		gen.IntRange(0, 59),
	))

	properties.TestingRun(t)
}
