package lengths

import "testing"

func TestBuild(t *testing.T) {
	d := Build([]string{"hello", "world", "fine", "a", "international"})
	if d.Total != 5 || len(d.Buckets) != MaxBucket {
		t.Fatalf("Total=%d buckets=%d", d.Total, len(d.Buckets))
	}
	b5 := d.Buckets[4]
	if b5.Len != 5 || b5.Equal != 2 || b5.Less != 2 || b5.More != 1 {
		t.Fatalf("bucket 5 = %+v", b5)
	}
	if b5.EqualRatio != 0.4 {
		t.Fatalf("EqualRatio = %v", b5.EqualRatio)
	}
	b1 := d.Buckets[0]
	if b1.Equal != 1 || b1.Less != 0 || b1.More != 4 {
		t.Fatalf("bucket 1 = %+v", b1)
	}
}

func TestBuild_PartitionsTotal(t *testing.T) {
	in := []string{"a", "bb", "ccc", "dddd", "eeeee", "ffffff", "ggggggg", "hhhhhhhh", "iiiiiiiii", "jjjjjjjjjj", "bb", "café"}
	d := Build(in)
	for _, b := range d.Buckets {
		if b.Equal+b.More+b.Less != d.Total {
			t.Fatalf("bucket %d does not partition: %+v", b.Len, b)
		}
		sum := b.EqualRatio + b.MoreRatio + b.LessRatio
		if sum < 0.999999 || sum > 1.000001 {
			t.Fatalf("bucket %d ratios sum %v", b.Len, sum)
		}
	}
	// rune length, not byte length
	if d.Buckets[3].Equal != 2 {
		t.Fatalf("len 4 equal = %d", d.Buckets[3].Equal)
	}
}

func TestBuild_Empty(t *testing.T) {
	d := Build(nil)
	for _, b := range d.Buckets {
		if b.Equal != 0 || b.More != 0 || b.Less != 0 || b.EqualRatio != 0 || b.MoreRatio != 0 || b.LessRatio != 0 {
			t.Fatalf("empty bucket = %+v", b)
		}
	}
}

func TestBand(t *testing.T) {
	s, m, l := Band([]string{"cat", "house", "elephant", "go", "planet"})
	if len(s) != 2 || len(m) != 2 || len(l) != 1 {
		t.Fatalf("bands = %v %v %v", s, m, l)
	}
}
