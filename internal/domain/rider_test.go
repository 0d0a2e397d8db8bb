package domain

import "testing"

func TestBikeSpeedForAge(t *testing.T) {
	tests := []struct {
		age  int
		want float64
	}{
		{age: 10, want: 5.0},
		{age: 14, want: 5.0},
		{age: 15, want: 4.0},
		{age: 18, want: 4.0},
		{age: 19, want: 3.3},
		{age: 67, want: 3.3},
	}

	for _, tt := range tests {
		if got := BikeSpeedForAge(tt.age); got != tt.want {
			t.Errorf("BikeSpeedForAge(%d) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

func TestRiderUsesBikes(t *testing.T) {
	tests := []struct {
		name  string
		rider RiderProfile
		want  bool
	}{
		{"child opted in", RiderProfile{AgeYears: 8, BikeOptedIn: true}, false},
		{"ten opted in", RiderProfile{AgeYears: 10, BikeOptedIn: true}, true},
		{"adult opted out", RiderProfile{AgeYears: 30, BikeOptedIn: false}, false},
		{"adult opted in", RiderProfile{AgeYears: 30, BikeOptedIn: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rider.UsesBikes(); got != tt.want {
				t.Fatalf("UsesBikes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRiderValidate(t *testing.T) {
	if err := (RiderProfile{AgeYears: -1}).Validate(); err == nil {
		t.Fatal("expected error for negative age")
	}
	if err := (RiderProfile{AgeYears: 0}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
