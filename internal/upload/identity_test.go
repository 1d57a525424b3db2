package upload

import (
	"testing"

	"opsdb/internal/employee"

	"github.com/stretchr/testify/assert"
)

func TestShortCode(t *testing.T) {
	assert.Equal(t, "jdoe", ShortCode("John", "Doe"))
	assert.Equal(t, "msilva", ShortCode("Maria", "Silva"))
	assert.Equal(t, "jdoe", ShortCode(" John ", " Doe "))
	assert.Equal(t, "", ShortCode("", "Doe"))
	assert.Equal(t, "", ShortCode("John", ""))
}

func TestBuildShortCodeMapping(t *testing.T) {
	rows := [][]string{
		{"Odoo ID", "First Name", "Last Name"},
		{"70101", "John", "Doe"},
		{"70102", "Jane", "Smith"},
		{"70103", "James", "Doe"}, // jdoe collides, first mapping wins
		{"", "No", "ID"},
	}

	mapping := BuildShortCodeMapping(rows)

	assert.Equal(t, int64(70101), mapping["jdoe"])
	assert.Equal(t, int64(70102), mapping["jsmith"])
	assert.Len(t, mapping, 2)
}

func TestBuildShortCodeMapping_CombinedNameColumn(t *testing.T) {
	rows := [][]string{
		{"#", "Name"},
		{"5", "Smith, Jane"},
	}

	mapping := BuildShortCodeMapping(rows)

	assert.Equal(t, int64(5), mapping["jsmith"])
}

func TestResolveEmployeeID(t *testing.T) {
	directory := []employee.DirectoryEntry{
		{ID: 70101, FirstName: "John", LastName: "Doe"},
		{ID: 70102, FirstName: "Jane", LastName: "Smith"},
	}
	mapping := map[string]int64{"jdoe": 99}

	t.Run("mapping wins over fuzzy match", func(t *testing.T) {
		id, ok := ResolveEmployeeID("JDoe", mapping, directory)
		assert.True(t, ok)
		assert.Equal(t, int64(99), id)
	})

	t.Run("all digit token is a literal ID", func(t *testing.T) {
		id, ok := ResolveEmployeeID("99999", nil, directory)
		assert.True(t, ok)
		assert.Equal(t, int64(99999), id)
	})

	t.Run("fuzzy prefix match against directory", func(t *testing.T) {
		id, ok := ResolveEmployeeID("jsmith", nil, directory)
		assert.True(t, ok)
		assert.Equal(t, int64(70102), id)
	})

	t.Run("fuzzy match tolerates truncated last name", func(t *testing.T) {
		id, ok := ResolveEmployeeID("jsmi", nil, directory)
		assert.True(t, ok)
		assert.Equal(t, int64(70102), id)
	})

	t.Run("unresolvable token", func(t *testing.T) {
		_, ok := ResolveEmployeeID("zzz", nil, directory)
		assert.False(t, ok)
	})

	t.Run("empty token", func(t *testing.T) {
		_, ok := ResolveEmployeeID("  ", mapping, directory)
		assert.False(t, ok)
	})
}
