package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserNameEquality(t *testing.T) {
	assert.True(t, User("x").Eq(User("x")))
	assert.False(t, User("x").Eq(User("y")))
}

func TestFreshNamesAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := Fresh("x")
		assert.True(t, n.IsGenerated())
		assert.False(t, seen[n.String()], "fresh name repeated: %s", n)
		seen[n.String()] = true
	}
}

func TestFreshNeverEqualsUser(t *testing.T) {
	// A generated name must be distinct from every user name, even when the
	// hint collides.
	n := Fresh("x")
	assert.False(t, n.Eq(User("x")))
	assert.False(t, User("x").Eq(n))
}

func TestFreshEqualsItselfOnly(t *testing.T) {
	a := Fresh("a")
	b := Fresh("a")
	assert.True(t, a.Eq(a))
	assert.False(t, a.Eq(b))
}

func TestVarEquality(t *testing.T) {
	tests := []struct {
		name string
		a, b Var
		want bool
	}{
		{"same free name", Free(User("x")), Free(User("x")), true},
		{"different free names", Free(User("x")), Free(User("y")), false},
		{"bound compares by index", Bound(User("x"), 0), Bound(User("y"), 0), true},
		{"bound index mismatch", Bound(User("x"), 0), Bound(User("x"), 1), false},
		{"free never equals bound", Free(User("x")), Bound(User("x"), 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Eq(tt.b))
		})
	}
}
