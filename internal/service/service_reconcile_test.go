package service

import (
	"testing"

	"github.com/MKhiriev/penny-sync/models"
	"github.com/stretchr/testify/assert"
)

func events(ops ...any) []models.ChangeEvent {
	var out []models.ChangeEvent
	for i := 0; i < len(ops); i += 2 {
		out = append(out, models.ChangeEvent{RemoteID: int64(ops[i].(int)), Operation: ops[i+1].(models.Operation)})
	}
	return out
}

func TestPartition(t *testing.T) {
	const (
		ins = models.OperationInsert
		upd = models.OperationUpdate
		del = models.OperationDelete
	)

	tests := []struct {
		name        string
		events      []models.ChangeEvent
		wantUpserts []int64
		wantDeletes []int64
	}{
		{
			name: "empty",
		},
		{
			name:        "inserts and updates are upserted once",
			events:      events(3, ins, 1, upd, 3, upd, 2, ins),
			wantUpserts: []int64{3, 1, 2},
		},
		{
			name:        "delete wins over an earlier update",
			events:      events(5, upd, 5, del),
			wantDeletes: []int64{5},
		},
		{
			name:        "delete wins over a later insert",
			events:      events(7, del, 7, ins, 8, upd),
			wantUpserts: []int64{8},
			wantDeletes: []int64{7},
		},
		{
			name:        "first-seen order is kept",
			events:      events(9, del, 4, ins, 6, del, 4, upd, 9, del),
			wantUpserts: []int64{4},
			wantDeletes: []int64{9, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upserts, deletes := Partition(tt.events)
			assert.Equal(t, tt.wantUpserts, upserts)
			assert.Equal(t, tt.wantDeletes, deletes)
		})
	}
}

func Test_idFilterQuery(t *testing.T) {
	q := idFilterQuery([]int64{1, 22, 333})
	assert.Equal(t, `[{"field":"id","operator":"in","value":"1,22,333"}]`, q.Get("filter"))
}

func Test_chunk(t *testing.T) {
	assert.Nil(t, chunk([]int{}, 3))
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, chunk([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1, 2, 3}}, chunk([]int{1, 2, 3}, 0))
}
