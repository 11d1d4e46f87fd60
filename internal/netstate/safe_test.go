package netstate

import "testing"

func TestSafe(t *testing.T) {
	tests := []struct {
		name string
		c    Classifier
		want Category
	}{
		{"valid", ClassifierFunc(func() Category { return Mobile }), Mobile},
		{"out of range", ClassifierFunc(func() Category { return Category(9) }), Offline},
		{"negative", ClassifierFunc(func() Category { return Category(-1) }), Offline},
		{"panic", ClassifierFunc(func() Category { panic("boom") }), Offline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Safe(tt.c).Classify(); got != tt.want {
				t.Errorf("Safe().Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSafeIsIdempotent(t *testing.T) {
	s := Safe(ClassifierFunc(func() Category { return Wifi }))
	if Safe(s) != s {
		t.Error("wrapping a safe classifier again should return it unchanged")
	}
}
