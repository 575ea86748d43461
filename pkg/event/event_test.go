package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFire_NamedAndWildcard(t *testing.T) {
	t.Cleanup(Flush)

	var named, all []Change
	Listen("dish.created", func(c Change) { named = append(named, c) })
	Listen(Wildcard, func(c Change) { all = append(all, c) })

	Fire(Change{Entity: "dish", Action: "created", ID: 1})
	Fire(Change{Entity: "section", Action: "deleted", ID: 2})

	assert.Equal(t, []Change{{Entity: "dish", Action: "created", ID: 1}}, named)
	assert.Len(t, all, 2)
}

func TestFlush(t *testing.T) {
	called := false
	Listen("menu.updated", func(Change) { called = true })
	Flush()

	Fire(Change{Entity: "menu", Action: "updated", ID: 3})
	assert.False(t, called)
}
