package collection

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// item is equivalent to another item with the same key, case-insensitively.
type item struct {
	key string
	val int
}

func (i item) SameAs(o item) bool { return strings.EqualFold(i.key, o.key) }

func TestUniqueList_Add(t *testing.T) {
	var l UniqueList[item]
	require.NoError(t, l.Add(item{"a", 1}))
	require.NoError(t, l.Add(item{"b", 2}))

	err := l.Add(item{"A", 3})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 2, l.Len())
	assert.True(t, l.Contains(item{key: "B"}))
}

func TestUniqueList_Replace(t *testing.T) {
	tests := []struct {
		name        string
		target      item
		replacement item
		wantErr     error
		want        []item
	}{
		{"with equivalent of itself", item{"a", 0}, item{"A", 9}, nil, []item{{"A", 9}, {"b", 2}}},
		{"with new key", item{"a", 0}, item{"c", 3}, nil, []item{{"c", 3}, {"b", 2}}},
		{"clashing with another", item{"a", 0}, item{"b", 7}, ErrDuplicate, []item{{"a", 1}, {"b", 2}}},
		{"missing target", item{"z", 0}, item{"y", 0}, ErrNotFound, []item{{"a", 1}, {"b", 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewUniqueList(item{"a", 1}, item{"b", 2})
			require.NoError(t, err)

			err = l.Replace(tt.target, tt.replacement)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, l.View().Slice())
		})
	}
}

func TestUniqueList_Remove(t *testing.T) {
	l, err := NewUniqueList(item{"a", 1}, item{"b", 2}, item{"c", 3})
	require.NoError(t, err)

	before := l.View().Slice()
	require.NoError(t, l.Remove(item{key: "b"}))
	assert.Equal(t, []item{{"a", 1}, {"c", 3}}, l.View().Slice())
	assert.Equal(t, item{"b", 2}, before[1], "earlier slices stay intact")

	assert.ErrorIs(t, l.Remove(item{key: "b"}), ErrNotFound)
}

func TestUniqueList_ReplaceAll(t *testing.T) {
	l, err := NewUniqueList(item{"a", 1})
	require.NoError(t, err)

	err = l.ReplaceAll([]item{{"x", 1}, {"X", 2}})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, []item{{"a", 1}}, l.View().Slice(), "list unchanged on failure")

	require.NoError(t, l.ReplaceAll([]item{{"x", 1}, {"y", 2}}))
	assert.Equal(t, 2, l.Len())

	_, err = NewUniqueList(item{"q", 1}, item{"Q", 1})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUniqueList_Clone(t *testing.T) {
	l, _ := NewUniqueList(item{"a", 1})
	c := l.Clone()
	require.NoError(t, c.Add(item{"b", 2}))
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 2, c.Len())
}

func TestView(t *testing.T) {
	var zero View[item]
	assert.Equal(t, 0, zero.Len())
	assert.False(t, zero.Contains(item{key: "a"}))
	assert.Nil(t, zero.Slice())
	for range zero.All() {
		t.Fatal("zero view must not yield")
	}

	l, _ := NewUniqueList(item{"a", 1}, item{"b", 2})
	v := l.View()
	assert.Equal(t, item{"b", 2}, v.At(1))

	// the view follows the list
	require.NoError(t, l.Add(item{"c", 3}))
	assert.Equal(t, 3, v.Len())

	// slices are copies
	s := v.Slice()
	s[0] = item{"zzz", 0}
	assert.Equal(t, item{"a", 1}, v.At(0))

	var keys []string
	for i, it := range v.All() {
		keys = append(keys, it.key)
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestUniqueList_RandomSequences(t *testing.T) {
	keys := []string{"a", "A", "b", "B", "c", "d"}

	for _, seed := range []uint64{1, 17, 256, 4099} {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			r := rand.New(rand.NewPCG(seed, ^seed))
			var l UniqueList[item]
			// reference model: folded keys in list order
			want := []string{}
			indexOf := func(key string) int { return slices.Index(want, strings.ToLower(key)) }

			for i := 0; i < 500; i++ {
				k := keys[r.IntN(len(keys))]
				it := item{key: k, val: i}
				switch r.IntN(3) {
				case 0:
					err := l.Add(it)
					if indexOf(k) >= 0 {
						require.ErrorIs(t, err, ErrDuplicate, "step %d add %s", i, k)
					} else {
						require.NoError(t, err, "step %d add %s", i, k)
						want = append(want, strings.ToLower(k))
					}
				case 1:
					target := item{key: keys[r.IntN(len(keys))]}
					ti, ri := indexOf(target.key), indexOf(k)
					err := l.Replace(target, it)
					switch {
					case ti < 0:
						require.ErrorIs(t, err, ErrNotFound, "step %d replace %s", i, target.key)
					case ri >= 0 && ri != ti:
						require.ErrorIs(t, err, ErrDuplicate, "step %d replace %s with %s", i, target.key, k)
					default:
						require.NoError(t, err, "step %d replace %s with %s", i, target.key, k)
						want[ti] = strings.ToLower(k)
					}
				default:
					err := l.Remove(it)
					if j := indexOf(k); j >= 0 {
						require.NoError(t, err, "step %d remove %s", i, k)
						want = slices.Delete(want, j, j+1)
					} else {
						require.ErrorIs(t, err, ErrNotFound, "step %d remove %s", i, k)
					}
				}

				got := make([]string, 0, l.Len())
				for _, x := range l.View().All() {
					got = append(got, strings.ToLower(x.key))
				}
				require.Equal(t, want, got, "step %d", i)
				for a := 0; a < l.Len(); a++ {
					for b := a + 1; b < l.Len(); b++ {
						require.False(t, l.View().At(a).SameAs(l.View().At(b)), "step %d: %d and %d equivalent", i, a, b)
					}
				}
			}
		})
	}
}
