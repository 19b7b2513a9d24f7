package invariants

import (
	"testing"

	"github.com/regions-qa/regions-contract-tests/regions"

	"github.com/stretchr/testify/assert"
)

var novosibirsk = region("8", "Новосибирск", "ru")

func TestCaseInsensitive(t *testing.T) {
	variants := []QueryResponse{
		{Q: "новосибирск", Response: pageResponse(novosibirsk)},
		{Q: "НОВОСИБИРСК", Response: pageResponse(novosibirsk)},
		{Q: "НоВоСиБиРсК", Response: pageResponse(novosibirsk)},
	}
	assert.True(t, CaseInsensitive(variants).Passed)

	variants[2].Response = pageResponse()
	r := CaseInsensitive(variants)
	assert.False(t, r.Passed)
	assert.Contains(t, r.Detail, "НоВоСиБиРсК")

	variants[2].Response = errorResponse("boom")
	assert.False(t, CaseInsensitive(variants).Passed)

	assert.False(t, CaseInsensitive(variants[:1]).Passed)
}

func TestCaseInsensitiveNeedsSomeMatch(t *testing.T) {
	variants := []QueryResponse{
		{Q: "новосибирск", Response: pageResponse()},
		{Q: "НОВОСИБИРСК", Response: pageResponse()},
		{Q: "НоВоСиБиРсК", Response: pageResponse()},
	}
	r := CaseInsensitive(variants)
	assert.False(t, r.Passed)
	assert.Contains(t, r.Detail, "found any region")
}

func TestCaseInsensitiveIgnoresOrder(t *testing.T) {
	a, b := region("1", "Омск", "ru"), region("2", "Томск", "ru")
	variants := []QueryResponse{
		{Q: "мск", Response: pageResponse(a, b)},
		{Q: "МСК", Response: pageResponse(b, a)},
	}
	assert.True(t, CaseInsensitive(variants).Passed)
}

func TestNameContains(t *testing.T) {
	page := *pageResponse(region("1", "Новосибирск", "ru"), region("2", "Новокузнецк", "ru")).Page
	assert.True(t, NameContains("нов", page).Passed)
	assert.True(t, NameContains("НОВО", page).Passed)

	r := NameContains("сиб", page)
	assert.False(t, r.Passed)
	assert.Contains(t, r.Detail, "Новокузнецк")

	assert.False(t, NameContains("нов", regions.ResultPage{}).Passed)
}

func TestQueryDominates(t *testing.T) {
	assert.True(t, QueryDominates("Новосибирск", *pageResponse(novosibirsk).Page).Passed)
	assert.False(t, QueryDominates("Новосибирск", *pageResponse().Page).Passed)
	assert.False(t, QueryDominates("Новосибирск", *pageResponse(novosibirsk, region("9", "Омск", "ru")).Page).Passed)
	assert.False(t, QueryDominates("Новосибирск", *pageResponse(region("9", "Омск", "ru")).Page).Passed)
}

func TestMinimumQueryLength(t *testing.T) {
	for _, q := range []string{"", "н", "но"} {
		t.Run("short "+q, func(t *testing.T) {
			assert.True(t, MinimumQueryLength(English, q, errorResponse(English.ShortQuery)).Passed)
			assert.False(t, MinimumQueryLength(English, q, errorResponse(Russian.ShortQuery)).Passed)
			assert.False(t, MinimumQueryLength(English, q, pageResponse()).Passed)
		})
	}
	for _, q := range []string{"нов", "ново", "zzz"} {
		t.Run("long enough "+q, func(t *testing.T) {
			assert.True(t, MinimumQueryLength(English, q, pageResponse(novosibirsk)).Passed)
			assert.True(t, MinimumQueryLength(English, q, pageResponse()).Passed)
			assert.False(t, MinimumQueryLength(English, q, errorResponse(English.ShortQuery)).Passed)
		})
	}
}

func TestMinimumQueryLengthCountsCharactersNotBytes(t *testing.T) {
	// "нов" is six bytes but three characters
	assert.True(t, MinimumQueryLength(Russian, "нов", pageResponse()).Passed)
}
