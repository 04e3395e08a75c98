package har

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Select returns the positions of entries whose URL contains at least one of
// include and none of exclude. Matching is case-sensitive substring
// containment. An empty include list selects nothing.
func Select(entries []Entry, include, exclude []string) *roaring.Bitmap {
	result := roaring.New()
	for _, s := range include {
		result.Or(urlsContaining(entries, s))
	}

	for _, s := range exclude {
		if result.IsEmpty() {
			break
		}
		result.AndNot(urlsContaining(entries, s))
	}

	return result
}

// Filter returns the entries selected by include and exclude, in their
// original relative order. Filtering a result again with the same lists
// returns the same sequence.
func Filter(entries []Entry, include, exclude []string) []Entry {
	return Pick(entries, Select(entries, include, exclude))
}

// Pick returns the entries at the positions set in bm, in ascending order.
func Pick(entries []Entry, bm *roaring.Bitmap) []Entry {
	out := make([]Entry, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if i < len(entries) {
			out = append(out, entries[i])
		}
	}
	return out
}

// Filter applies Filter to the archive's entries.
func (a *Archive) Filter(include, exclude []string) []Entry {
	return Filter(a.Entries, include, exclude)
}

func urlsContaining(entries []Entry, substr string) *roaring.Bitmap {
	bm := roaring.New()
	for i := range entries {
		if strings.Contains(entries[i].Request.URL, substr) {
			bm.Add(uint32(i))
		}
	}
	return bm
}
