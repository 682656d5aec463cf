package field

import (
	"testing"
)

func TestIndexEqual(t *testing.T) {
	tests := []struct {
		ix1   Index
		ix2   Index
		equal bool
	}{
		{ix1: nil, ix2: NewIndex(), equal: true},
		{ix1: nil, ix2: nil, equal: true},
		{ix1: NewIndex(0), ix2: NewIndex(0), equal: true},
		{ix1: NewIndex(0, 1), ix2: NewIndex(0, 1), equal: true},
		{ix1: nil, ix2: NewIndex(0, 1), equal: false},
		{ix1: NewIndex(1, 0), ix2: NewIndex(0, 1), equal: false},
	}

	for _, tt := range tests {
		if equal := tt.ix1.Equal(tt.ix2); tt.equal != equal {
			t.Errorf("%v, %v: expected %v, actual %v", tt.ix1, tt.ix2, tt.equal, equal)
		}
		if equal := tt.ix2.Equal(tt.ix1); tt.equal != equal {
			t.Errorf("%v, %v: expected %v, actual %v", tt.ix2, tt.ix1, tt.equal, equal)
		}
	}
}

func TestIndexAppend(t *testing.T) {
	ix1 := NewIndex(1, 2)
	ix2 := ix1.Append(3)
	ix3 := ix1.Append(4)

	if want, got := NewIndex(1, 2), ix1; !want.Equal(got) {
		t.Errorf("original modified: want=%v got=%v", want, got)
	}
	if want, got := NewIndex(1, 2, 3), ix2; !want.Equal(got) {
		t.Errorf("want=%v got=%v", want, got)
	}
	if want, got := NewIndex(1, 2, 4), ix3; !want.Equal(got) {
		t.Errorf("want=%v got=%v", want, got)
	}
}
