package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, ok := parseID("42")
	require.True(t, ok)
	assert.EqualValues(t, 42, id)

	for _, s := range []string{"0", "-1", "abc", "", "1.5", "9999999999999999999999"} {
		_, ok := parseID(s)
		assert.False(t, ok, s)
	}
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, parsePage(""))
	assert.Equal(t, 1, parsePage("0"))
	assert.Equal(t, 1, parsePage("-3"))
	assert.Equal(t, 1, parsePage("junk"))
	assert.Equal(t, 7, parsePage("7"))
	assert.Equal(t, 2, parsePage(" 2 "))
}

func TestPagesFromTotal(t *testing.T) {
	assert.Equal(t, 1, pagesFromTotal(0, 30))
	assert.Equal(t, 1, pagesFromTotal(1, 30))
	assert.Equal(t, 1, pagesFromTotal(30, 30))
	assert.Equal(t, 2, pagesFromTotal(31, 30))
	assert.Equal(t, 4, pagesFromTotal(100, 30))
	assert.Equal(t, 1, pagesFromTotal(10, 0))
}

func TestParseDate(t *testing.T) {
	d := parseDate("2026-08-31")
	require.NotNil(t, d)
	assert.Equal(t, "2026-08-31", d.Format("2006-01-02"))

	assert.Nil(t, parseDate(""))
	assert.Nil(t, parseDate("  "))
	assert.Nil(t, parseDate("31/08/2026"))
	assert.Nil(t, parseDate("2026-13-01"))
}

func TestNormalizeReturnTo(t *testing.T) {
	assert.Equal(t, "/admin/students?p=2", normalizeReturnTo("/admin/students?p=2"))
	assert.Equal(t, "/admin", normalizeReturnTo(" /admin "))

	// anything that could leave the site is dropped
	for _, raw := range []string{
		"",
		"admin/students",
		"//evil.example.com",
		"https://evil.example.com/admin",
		"javascript:alert(1)",
	} {
		assert.Equal(t, "", normalizeReturnTo(raw), raw)
	}
}
