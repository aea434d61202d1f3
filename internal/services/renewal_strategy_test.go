package services

import (
	"testing"

	"expensewise/internal/core"
)

func TestDailyStrategy_Advance(t *testing.T) {
	s := DailyStrategy{}
	today := core.NewDate(2024, 1, 15)

	tests := []struct {
		name    string
		renewal core.Date
		want    core.Date
	}{
		{"future - unchanged", core.NewDate(2024, 1, 20), core.NewDate(2024, 1, 20)},
		{"today - unchanged", today, today},
		{"past - moves to today", core.NewDate(2024, 1, 2), today},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Advance(tt.renewal, today)
			if !got.Equal(tt.want) {
				t.Errorf("DailyStrategy.Advance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeeklyStrategy_Advance(t *testing.T) {
	s := WeeklyStrategy{}
	today := core.NewDate(2024, 1, 15)

	tests := []struct {
		name    string
		renewal core.Date
		want    core.Date
	}{
		{"future - unchanged", core.NewDate(2024, 1, 16), core.NewDate(2024, 1, 16)},
		{"exactly one week behind - lands today", core.NewDate(2024, 1, 8), today},
		{"3 days behind - next week", core.NewDate(2024, 1, 12), core.NewDate(2024, 1, 19)},
		{"10 days behind - two weeks", core.NewDate(2024, 1, 5), core.NewDate(2024, 1, 19)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Advance(tt.renewal, today)
			if !got.Equal(tt.want) {
				t.Errorf("WeeklyStrategy.Advance() = %v, want %v", got, tt.want)
			}
			if got.Weekday() != tt.renewal.Weekday() {
				t.Errorf("weekday changed from %v to %v", tt.renewal.Weekday(), got.Weekday())
			}
		})
	}
}

func TestMonthlyStrategy_Advance(t *testing.T) {
	s := MonthlyStrategy{}

	tests := []struct {
		name    string
		renewal core.Date
		today   core.Date
		want    core.Date
	}{
		{
			name:    "future - unchanged",
			renewal: core.NewDate(2024, 3, 20),
			today:   core.NewDate(2024, 3, 10),
			want:    core.NewDate(2024, 3, 20),
		},
		{
			name:    "earlier this month - next month",
			renewal: core.NewDate(2024, 3, 5),
			today:   core.NewDate(2024, 3, 10),
			want:    core.NewDate(2024, 4, 5),
		},
		{
			name:    "several months behind",
			renewal: core.NewDate(2023, 11, 15),
			today:   core.NewDate(2024, 3, 10),
			want:    core.NewDate(2024, 3, 15),
		},
		{
			name:    "31st clamps in February",
			renewal: core.NewDate(2024, 1, 31),
			today:   core.NewDate(2024, 2, 10),
			want:    core.NewDate(2024, 2, 29),
		},
		{
			name:    "31st comes back after short month",
			renewal: core.NewDate(2024, 1, 31),
			today:   core.NewDate(2024, 3, 1),
			want:    core.NewDate(2024, 3, 31),
		},
		{
			name:    "across year end",
			renewal: core.NewDate(2023, 12, 20),
			today:   core.NewDate(2024, 1, 21),
			want:    core.NewDate(2024, 2, 20),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Advance(tt.renewal, tt.today)
			if !got.Equal(tt.want) {
				t.Errorf("MonthlyStrategy.Advance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYearlyStrategy_Advance(t *testing.T) {
	s := YearlyStrategy{}

	tests := []struct {
		name    string
		renewal core.Date
		today   core.Date
		want    core.Date
	}{
		{
			name:    "later this year - unchanged",
			renewal: core.NewDate(2024, 6, 15),
			today:   core.NewDate(2024, 3, 10),
			want:    core.NewDate(2024, 6, 15),
		},
		{
			name:    "passed this year - next year",
			renewal: core.NewDate(2024, 2, 15),
			today:   core.NewDate(2024, 3, 10),
			want:    core.NewDate(2025, 2, 15),
		},
		{
			name:    "several years behind",
			renewal: core.NewDate(2021, 6, 15),
			today:   core.NewDate(2024, 3, 10),
			want:    core.NewDate(2024, 6, 15),
		},
		{
			name:    "leap day clamps",
			renewal: core.NewDate(2024, 2, 29),
			today:   core.NewDate(2024, 3, 1),
			want:    core.NewDate(2025, 2, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Advance(tt.renewal, tt.today)
			if !got.Equal(tt.want) {
				t.Errorf("YearlyStrategy.Advance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetRenewalStrategy(t *testing.T) {
	tests := []struct {
		name      string
		frequency core.Frequency
		wantErr   bool
	}{
		{"daily", core.Daily, false},
		{"weekly", core.Weekly, false},
		{"monthly", core.Monthly, false},
		{"yearly", core.Yearly, false},
		{"unknown", core.Frequency("biweekly"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := GetRenewalStrategy(tt.frequency)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetRenewalStrategy() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && s == nil {
				t.Error("GetRenewalStrategy() returned nil strategy")
			}
		})
	}
}

func TestRegisterRenewalStrategy(t *testing.T) {
	custom := core.Frequency("biweekly")

	RegisterRenewalStrategy(custom, WeeklyStrategy{})

	s, err := GetRenewalStrategy(custom)
	if err != nil {
		t.Errorf("GetRenewalStrategy() after register error = %v", err)
	}
	if s == nil {
		t.Error("GetRenewalStrategy() returned nil after registration")
	}

	// Cleanup - remove the custom strategy to avoid affecting other tests
	delete(renewalStrategies, custom)
}
