package schema

import (
	"PlanPhotos/internal/metrics"
	"PlanPhotos/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	op     string
	owner  string
	planID string
	src    string
	index  int
	kind   model.Kind
	order  []model.SortEntry
}

type fakeService struct {
	calls  []call
	photos []model.PhotoRecord
	err    error
}

func (f *fakeService) ListPhotos(_ context.Context, owner, planID string, kind model.Kind) ([]model.PhotoRecord, error) {
	f.calls = append(f.calls, call{op: "list", owner: owner, planID: planID, kind: kind})
	return f.photos, f.err
}

func (f *fakeService) AddPhoto(_ context.Context, owner, planID, src string, kind model.Kind) error {
	f.calls = append(f.calls, call{op: "add", owner: owner, planID: planID, src: src, kind: kind})
	return f.err
}

func (f *fakeService) DeletePhoto(_ context.Context, owner, planID, src string, sortIndex int, kind model.Kind) error {
	f.calls = append(f.calls, call{op: "delete", owner: owner, planID: planID, src: src, index: sortIndex, kind: kind})
	return f.err
}

func (f *fakeService) UpdateSortOrder(_ context.Context, owner, planID string, order []model.SortEntry, kind model.Kind) error {
	f.calls = append(f.calls, call{op: "sort", owner: owner, planID: planID, order: order, kind: kind})
	return f.err
}

func run(t *testing.T, svc *fakeService, m *metrics.Metrics, query string, vars map[string]interface{}) *graphql.Result {
	t.Helper()
	s, err := New(svc, m)
	require.NoError(t, err)
	return graphql.Do(graphql.Params{Schema: s, RequestString: query, VariableValues: vars, Context: context.Background()})
}

func TestQuery_Photos(t *testing.T) {
	svc := &fakeService{photos: []model.PhotoRecord{{Reference: "a.jpg", SortIndex: 1}}}

	res := run(t, svc, nil, `{ planInteriorPhotos(clientName: "acme", planId: "42") { src sortIndex } }`, nil)
	require.False(t, res.HasErrors(), "%v", res.Errors)

	data := res.Data.(map[string]interface{})
	assert.Equal(t, []interface{}{map[string]interface{}{"src": "a.jpg", "sortIndex": 1}}, data["planInteriorPhotos"])
	assert.Equal(t, []call{{op: "list", owner: "acme", planID: "42", kind: model.Interior}}, svc.calls)
}

func TestQuery_EmptyCollection(t *testing.T) {
	res := run(t, &fakeService{}, nil, `{ planExteriorPhotos(clientName: "acme", planId: "42") { src } }`, nil)
	require.False(t, res.HasErrors(), "%v", res.Errors)
	assert.Equal(t, []interface{}{}, res.Data.(map[string]interface{})["planExteriorPhotos"])
}

func TestMutation_AddPhoto(t *testing.T) {
	svc := &fakeService{}
	res := run(t, svc, nil, `mutation { addPlanPhoto(clientName: "acme", planId: "42", src: "n.png", table: "Interior") }`, nil)
	require.False(t, res.HasErrors(), "%v", res.Errors)

	assert.Equal(t, true, res.Data.(map[string]interface{})["addPlanPhoto"])
	assert.Equal(t, []call{{op: "add", owner: "acme", planID: "42", src: "n.png", kind: model.Interior}}, svc.calls)
}

func TestMutation_AddPhotoUnknownTable(t *testing.T) {
	svc := &fakeService{}
	res := run(t, svc, nil, `mutation { addPlanPhoto(clientName: "acme", planId: "42", src: "n.png", table: "garage") }`, nil)
	require.True(t, res.HasErrors())
	assert.Contains(t, res.Errors[0].Message, "unknown photo collection")
	assert.Empty(t, svc.calls)
}

func TestMutation_DeletePhoto(t *testing.T) {
	svc := &fakeService{}
	res := run(t, svc, nil, `mutation { deletePlanExtPhoto(clientName: "acme", planId: "42", src: "b.jpg", sortIndex: 2) }`, nil)
	require.False(t, res.HasErrors(), "%v", res.Errors)
	assert.Equal(t, []call{{op: "delete", owner: "acme", planID: "42", src: "b.jpg", index: 2, kind: model.Exterior}}, svc.calls)
}

func TestMutation_UpdateSortWithVariables(t *testing.T) {
	svc := &fakeService{}
	query := `mutation ($order: [PhotoSortInput!]!) {
		updatePlanPhotoSort(clientName: "acme", planId: "42", sortOrder: $order, table: "exterior")
	}`
	vars := map[string]interface{}{"order": []interface{}{
		map[string]interface{}{"src": "B", "sortIndex": 1},
		map[string]interface{}{"src": "A", "sortIndex": 2},
	}}

	res := run(t, svc, nil, query, vars)
	require.False(t, res.HasErrors(), "%v", res.Errors)
	require.Len(t, svc.calls, 1)
	assert.Equal(t, []model.SortEntry{{Reference: "B", SortIndex: 1}, {Reference: "A", SortIndex: 2}}, svc.calls[0].order)
	assert.Equal(t, model.Exterior, svc.calls[0].kind)
}

func TestInstrument(t *testing.T) {
	m := metrics.New()

	run(t, &fakeService{}, m, `mutation { deletePlanIntPhoto(clientName: "acme", planId: "42", src: "b.jpg", sortIndex: 1) }`, nil)
	res := run(t, &fakeService{err: errors.New("boom")}, m, `mutation { deletePlanIntPhoto(clientName: "acme", planId: "42", src: "b.jpg", sortIndex: 1) }`, nil)
	require.True(t, res.HasErrors())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("deletePlanIntPhoto", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("deletePlanIntPhoto", "error")))
}
