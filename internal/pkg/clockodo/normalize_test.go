package clockodo

import (
	"errors"
	"testing"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCollection_DataRenamed(t *testing.T) {
	list := []any{map[string]any{"id": float64(1)}}
	env := clockodo.Envelope{"data": list, "paging": map[string]any{"current_page": float64(1)}}

	got, err := NormalizeCollection(clockodo.FamilyProject, env)
	require.NoError(t, err)

	assert.Equal(t, list, got["projects"])
	assert.NotContains(t, got, "data")
	assert.Equal(t, env["paging"], got["paging"])
	assert.Contains(t, env, "data", "input envelope must not be mutated")
}

func TestNormalizeCollection_Identity(t *testing.T) {
	for _, family := range clockodo.Families() {
		if !family.IsCollection() {
			continue
		}
		env := clockodo.Envelope{
			family.PluralKey(): []any{map[string]any{family.IDField(): float64(3)}},
			"data":             "left alone",
		}
		got, err := NormalizeCollection(family, env)
		require.NoError(t, err)
		assert.Equal(t, env, got, "family %s", family)
	}
}

func TestNormalizeCollection_MissingKeys(t *testing.T) {
	_, err := NormalizeCollection(clockodo.FamilyAbsence, clockodo.Envelope{"paging": nil})
	var formatErr *clockodo.UpstreamFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, clockodo.FamilyAbsence, formatErr.Family)
}

func TestNormalizeCollection_RecordFamilyPassThrough(t *testing.T) {
	env := clockodo.Envelope{"running": nil}
	got, err := NormalizeCollection(clockodo.FamilyClock, env)
	require.NoError(t, err)
	assert.Equal(t, env, got)
}

func TestNormalizeRecord(t *testing.T) {
	got := NormalizeRecord(clockodo.FamilyAbsence, clockodo.Envelope{"data": map[string]any{"id": float64(9)}})
	assert.Contains(t, got, "absence")
	assert.NotContains(t, got, "data")

	passthrough := clockodo.Envelope{"entry": map[string]any{"id": float64(1)}}
	assert.Equal(t, passthrough, NormalizeRecord(clockodo.FamilyTimeEntry, passthrough))

	success := clockodo.Envelope{"success": true}
	assert.Equal(t, success, NormalizeRecord(clockodo.FamilyTimeEntry, success))
}

func TestEnvelopeRecords_WholeBatchFailsOnBadElement(t *testing.T) {
	env := clockodo.Envelope{"users": []any{
		map[string]any{"id": float64(1)},
		map[string]any{"name": "no id"},
	}}
	_, err := env.Records(clockodo.FamilyUser)
	var formatErr *clockodo.UpstreamFormatError
	require.True(t, errors.As(err, &formatErr))

	env = clockodo.Envelope{"users": []any{"not an object"}}
	_, err = env.Records(clockodo.FamilyUser)
	assert.True(t, errors.As(err, &formatErr))
}

func TestEnvelopeRecords_PreservesOrder(t *testing.T) {
	env := clockodo.Envelope{"customers": []any{
		map[string]any{"id": float64(3)},
		map[string]any{"id": float64(1)},
		map[string]any{"id": float64(2)},
	}}
	records, err := env.Records(clockodo.FamilyCustomer)
	require.NoError(t, err)

	var ids []int
	for _, r := range records {
		id, _ := r.Int("id")
		ids = append(ids, id)
	}
	assert.Equal(t, []int{3, 1, 2}, ids)
}
