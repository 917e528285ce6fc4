package trie

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func TestIterator_BreadthFirst(t *testing.T) {
	tr := NewMap[rune, int]()
	for i, w := range []string{"wording", "word", "weird", "words", "we", "x"} {
		tr.Set(r(w), i)
	}

	it := tr.Enumerate(nil)
	var got []string
	lastLen := 0
	for {
		seq, _, ok := it.Next()
		if !ok {
			break
		}
		require.GreaterOrEqual(t, len(seq), lastLen, "breadth-first order")
		lastLen = len(seq)
		got = append(got, string(seq))
	}
	require.ElementsMatch(t, []string{"wording", "word", "weird", "words", "we", "x"}, got)
}

func TestIterator_PrefixSubtree(t *testing.T) {
	tr := NewRef[rune, int]()
	tr.Set(r("word"), 1)
	tr.Set(r("words"), 2)
	tr.Set(r("wording"), 3)
	tr.Set(r("worm"), 4)

	got := make(map[string]int)
	for seq, v := range tr.All(r("word")) {
		got[string(seq)] = v
	}
	require.Equal(t, map[string]int{"word": 1, "words": 2, "wording": 3}, got)

	// A valueless prefix still roots a subtree.
	got = make(map[string]int)
	for seq, v := range tr.All(r("wor")) {
		got[string(seq)] = v
	}
	require.Len(t, got, 4)

	_, _, ok := tr.Enumerate(r("wordz")).Next()
	require.False(t, ok)
	_, _, ok = tr.Enumerate(r("q")).Next()
	require.False(t, ok)
}

func TestIterator_LazyAndRestartable(t *testing.T) {
	tr := NewConcurrent[rune, int]()
	tr.Set(r("ab"), 1)

	// Nothing is resolved until the first Next.
	it := tr.Enumerate(r("a"))
	tr.Set(r("a"), 0)
	tr.Set(r("abc"), 2)

	count := func() int {
		n := 0
		for {
			if _, _, ok := it.Next(); !ok {
				return n
			}
			n++
		}
	}
	require.Equal(t, 3, count())
	require.Equal(t, 0, count())

	it.Reset()
	require.Equal(t, 3, count())
}

func TestIterator_CallerOwnsSequences(t *testing.T) {
	tr := NewMap[rune, int]()
	tr.Set(r("ab"), 1)
	tr.Set(r("abc"), 2)
	tr.Set(r("abd"), 3)

	it := tr.Enumerate(r("ab"))
	seq, _, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, "ab", string(seq))
	seq[0] = 'z'
	seq[1] = 'z'

	var rest []string
	for {
		seq, _, ok := it.Next()
		if !ok {
			break
		}
		rest = append(rest, string(seq))
	}
	require.ElementsMatch(t, []string{"abc", "abd"}, rest)
}

func TestIterator_AllStopsEarly(t *testing.T) {
	tr := NewMap[rune, int]()
	for _, w := range []string{"a", "b", "c", "d"} {
		tr.Set(r(w), 1)
	}
	n := 0
	for range tr.All(nil) {
		n++
		if n == 2 {
			break
		}
	}
	require.Equal(t, 2, n)

	n = 0
	tr.Walk(nil, func(seq []rune, v int) bool {
		n++
		return n == 3
	})
	require.Equal(t, 3, n)
}

func TestIterator_EnumerateMatchesMapFuzz(t *testing.T) {
	// Every key set inserted in any order enumerates back to exactly the
	// same key/value pairs, with each sequence intact.
	check := func(keys []string) bool {
		tr := NewMap[rune, int]()
		want := make(map[string]int)
		for i, k := range keys {
			if k == "" {
				continue
			}
			tr.Set(r(k), i)
			want[k] = i
		}
		got := make(map[string]int)
		for seq, v := range tr.All(nil) {
			if _, dup := got[string(seq)]; dup {
				return false
			}
			got[string(seq)] = v
		}
		if len(got) != len(want) {
			return false
		}
		for k, v := range want {
			if got[k] != v {
				return false
			}
		}
		return true
	}
	if err := quick.Check(check, nil); err != nil {
		t.Error(err)
	}
}

func TestIterator_RemoveEverythingFuzz(t *testing.T) {
	check := func(keys []string) bool {
		s := NewMapStore[rune, int]()
		tr := New[uint64, rune, int](s)
		for i, k := range keys {
			tr.Set(r(k), i)
		}
		for _, k := range keys {
			tr.Remove(r(k))
		}
		return s.NodeCount() == 0 && s.RelationCount() == 0
	}
	if err := quick.Check(check, nil); err != nil {
		t.Error(err)
	}
}
