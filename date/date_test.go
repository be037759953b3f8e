package date

import (
	"slices"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2024-02-06", want: New(2024, time.February, 6)},
		{in: "2024-2-6", want: New(2024, time.February, 6)},
		{in: "2024-13-01", wantErr: true},
		{in: "not-a-date", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNearestTradingDay(t *testing.T) {
	testCases := []struct {
		name string
		day  string
		want string
	}{
		{name: "weekday is itself", day: "2024-02-06", want: "2024-02-06"},
		{name: "saturday resolves to friday", day: "2024-02-03", want: "2024-02-02"},
		{name: "sunday resolves to friday", day: "2024-02-04", want: "2024-02-02"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MustParse(tc.day).NearestTradingDay(); got != MustParse(tc.want) {
				t.Errorf("NearestTradingDay(%s) = %s, want %s", tc.day, got, tc.want)
			}
		})
	}
}

func TestPreviousTradingDay(t *testing.T) {
	testCases := []struct {
		name string
		day  string
		want string
	}{
		{name: "tuesday to monday", day: "2024-02-06", want: "2024-02-05"},
		{name: "monday skips weekend", day: "2024-02-05", want: "2024-02-02"},
		{name: "sunday to friday", day: "2024-02-04", want: "2024-02-02"},
		{name: "saturday to friday", day: "2024-02-03", want: "2024-02-02"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MustParse(tc.day).PreviousTradingDay(); got != MustParse(tc.want) {
				t.Errorf("PreviousTradingDay(%s) = %s, want %s", tc.day, got, tc.want)
			}
		})
	}
}

func TestRangeTradingDays(t *testing.T) {
	// 2024-02-01 is a Thursday; the range spans one weekend.
	r := NewRange(MustParse("2024-02-01"), MustParse("2024-02-07"))
	want := []Date{
		MustParse("2024-02-01"),
		MustParse("2024-02-02"),
		MustParse("2024-02-05"),
		MustParse("2024-02-06"),
		MustParse("2024-02-07"),
	}
	got := slices.Collect(r.TradingDays())
	if !slices.Equal(got, want) {
		t.Errorf("TradingDays() = %v, want %v", got, want)
	}

	// The sequence is restartable: a second pass yields the same days.
	again := slices.Collect(r.TradingDays())
	if !slices.Equal(again, want) {
		t.Errorf("second TradingDays() pass = %v, want %v", again, want)
	}
}

func TestTradingDaysBack(t *testing.T) {
	testCases := []struct {
		name string
		end  string
		n    int
		want []string
	}{
		{
			name: "window within one week",
			end:  "2024-02-07",
			n:    3,
			want: []string{"2024-02-05", "2024-02-06", "2024-02-07"},
		},
		{
			name: "window crosses a weekend",
			end:  "2024-02-06",
			n:    4,
			want: []string{"2024-02-01", "2024-02-02", "2024-02-05", "2024-02-06"},
		},
		{
			name: "weekend end resolves to friday",
			end:  "2024-02-04",
			n:    2,
			want: []string{"2024-02-01", "2024-02-02"},
		},
		{
			name: "non positive window",
			end:  "2024-02-06",
			n:    0,
			want: nil,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := TradingDaysBack(MustParse(tc.end), tc.n)
			if len(got) != len(tc.want) {
				t.Fatalf("TradingDaysBack(%s, %d) = %v, want %v", tc.end, tc.n, got, tc.want)
			}
			for i, w := range tc.want {
				if got[i] != MustParse(w) {
					t.Errorf("TradingDaysBack(%s, %d)[%d] = %s, want %s", tc.end, tc.n, i, got[i], w)
				}
			}
		})
	}
}
