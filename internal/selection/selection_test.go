package selection

import (
	"testing"

	"github.com/IvanShishkin/printhound/pkg/models"
	"github.com/stretchr/testify/assert"
)

func entries(paths ...string) []models.FileEntry {
	list := make([]models.FileEntry, len(paths))
	for i, p := range paths {
		list[i] = models.FileEntry{Path: p}
	}
	return list
}

func TestSet_ToggleOne(t *testing.T) {
	s := New()
	e := models.FileEntry{Path: "/a.pdf"}

	assert.True(t, s.ToggleOne(e))
	assert.True(t, s.Contains("/a.pdf"))
	assert.Equal(t, 1, s.Count())

	assert.False(t, s.ToggleOne(e))
	assert.False(t, s.Contains("/a.pdf"))
	assert.Equal(t, 0, s.Count())
}

func TestSet_ToggleAll(t *testing.T) {
	displayed := entries("/a.pdf", "/b.pdf", "/c.pdf")

	t.Run("selects all when partially selected", func(t *testing.T) {
		s := New()
		s.Add(displayed[1])
		assert.True(t, s.ToggleAll(displayed))
		assert.Equal(t, 3, s.Count())
	})

	t.Run("clears when all selected", func(t *testing.T) {
		s := New()
		s.ToggleAll(displayed)
		assert.False(t, s.ToggleAll(displayed))
		assert.Equal(t, 0, s.Count())
	})

	t.Run("empty list selects nothing", func(t *testing.T) {
		s := New()
		assert.False(t, s.ToggleAll(nil))
		assert.Equal(t, 0, s.Count())
	})
}

func TestSet_ToggleAllInvolutive(t *testing.T) {
	displayed := entries("/a.pdf", "/b.pdf", "/c.pdf")

	for _, initial := range [][]int{{}, {0, 1, 2}} {
		s := New()
		for _, i := range initial {
			s.Add(displayed[i])
		}
		before := models.Paths(s.Items(displayed))

		s.ToggleAll(displayed)
		s.ToggleAll(displayed)

		assert.Equal(t, before, models.Paths(s.Items(displayed)), "initial %v", initial)
	}
}

func TestSet_Narrow(t *testing.T) {
	s := New()
	all := entries("/a.pdf", "/b.pdf", "/c.pdf")
	s.ToggleAll(all)

	s.Narrow(entries("/c.pdf", "/a.pdf"))

	assert.Equal(t, 2, s.Count())
	assert.False(t, s.Contains("/b.pdf"))
	assert.Equal(t, []string{"/a.pdf", "/c.pdf"}, models.Paths(s.Items(all)))

	s.Narrow(nil)
	assert.Equal(t, 0, s.Count())
}

func TestSet_ItemsFollowDisplayOrder(t *testing.T) {
	s := New()
	displayed := entries("/a.pdf", "/b.pdf", "/c.pdf")
	s.Add(displayed[2])
	s.Add(displayed[0])

	assert.Equal(t, []string{"/a.pdf", "/c.pdf"}, models.Paths(s.Items(displayed)))
	assert.Equal(t, []string{"/c.pdf", "/a.pdf"}, models.Paths(s.Items(nil)))
}

func TestSet_AddIsIdempotent(t *testing.T) {
	s := New()
	e := models.FileEntry{Path: "/a.pdf"}
	s.Add(e)
	s.Add(e)
	assert.Equal(t, 1, s.Count())

	s.Remove("/missing.pdf")
	assert.Equal(t, 1, s.Count())
}
