package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	ID       string  `db:"id"`
	Name     *string `db:"name"`
	Skipped  string  `db:"-"`
	Untagged string
	hidden   string  `db:"hidden"`
}

func TestStructTagValues(t *testing.T) {
	assert.Equal(t, []string{"id", "name"}, StructTagValues(row{}))
	assert.Equal(t, []string{"id", "name"}, StructTagValues(&row{}))
}

func TestStructToMap(t *testing.T) {
	name := "Hope House"
	m := StructToMap(&row{ID: "h1", Name: &name, Skipped: "x", hidden: "y"})

	assert.Len(t, m, 2)
	assert.Equal(t, "h1", m["id"])
	assert.Equal(t, &name, m["name"])
}

func TestStructTagValuesPanicsOnNonStruct(t *testing.T) {
	assert.Panics(t, func() { StructTagValues(42) })
}

func TestPrefixSliceOfStrings(t *testing.T) {
	assert.Equal(t, []string{"n.id", "n.title"}, PrefixSliceOfStrings("n", []string{"id", "title"}))
}

func TestPtrString(t *testing.T) {
	assert.Equal(t, "", PtrString(nil))
	assert.Equal(t, "Lusaka", PtrString(StringPtr("Lusaka")))
}

func TestNanoIDSize(t *testing.T) {
	assert.Len(t, NanoID(), NanoidSize)
	assert.Len(t, NanoIDSize(8), 8)
	assert.Len(t, NanoIDSize(0), NanoidSize)
}
