package fn

import (
	"reflect"
	"strings"
	"testing"
)

func TestMap(t *testing.T) {
	got := Map([]string{"display", "power"}, strings.ToUpper)
	want := []string{"DISPLAY", "POWER"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v", got)
	}
	if got := Map([]int(nil), func(v int) int { return v }); len(got) != 0 {
		t.Fatalf("empty input should map to empty output, got %v", got)
	}
}

func TestFilter(t *testing.T) {
	got := Filter([]int{1, 2, 3, 4, 5}, func(v int) bool { return v%2 == 0 })
	if !reflect.DeepEqual(got, []int{2, 4}) {
		t.Fatalf("got %v", got)
	}
	if got := Filter([]int{1, 3}, func(v int) bool { return v > 10 }); got != nil {
		t.Fatalf("no matches should yield nil, got %v", got)
	}
}

func TestReduce(t *testing.T) {
	sum := Reduce([]int{1, 2, 3}, 0, func(acc, v int) int { return acc + v })
	if sum != 6 {
		t.Fatalf("sum = %d", sum)
	}
	if got := Reduce(nil, 42, func(acc, v int) int { return acc + v }); got != 42 {
		t.Fatalf("empty reduce should return init, got %d", got)
	}
}

func TestUnique(t *testing.T) {
	got := Unique([]string{"a", "b", "a", "c", "b"})
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("got %v", got)
	}
}

func TestUniqueBy(t *testing.T) {
	type diag struct {
		issue string
		conf  float64
	}
	items := []diag{
		{"cracked screen", 0.9},
		{"dead battery", 0.8},
		{"cracked screen", 0.5},
	}
	got := UniqueBy(items, func(d diag) string { return d.issue })
	if len(got) != 2 {
		t.Fatalf("got %d items", len(got))
	}
	// first occurrence wins
	if got[0].conf != 0.9 {
		t.Fatalf("kept %v", got[0])
	}
}
