package changestream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type doc struct {
	ID     string `bson:"id"`
	Status string `bson:"status"`
}

func docKey(d doc) string { return d.ID }

func TestToChange(t *testing.T) {
	before := &doc{ID: "T1", Status: "PENDING"}
	after := &doc{ID: "T1", Status: "COMPLETED"}

	tests := []struct {
		name       string
		ev         event[doc]
		ok         bool
		wantBefore *doc
		wantAfter  *doc
	}{
		{"insert", event[doc]{OperationType: "insert", FullDocument: after}, true, nil, after},
		{"update", event[doc]{OperationType: "update", FullDocument: after, FullDocumentBeforeChange: before}, true, before, after},
		{"replace", event[doc]{OperationType: "replace", FullDocument: after, FullDocumentBeforeChange: before}, true, before, after},
		{"delete", event[doc]{OperationType: "delete", FullDocumentBeforeChange: before}, true, before, nil},
		{"invalidate", event[doc]{OperationType: "invalidate"}, false, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, ok := toChange(tt.ev, docKey)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.wantBefore, ch.Before)
			assert.Equal(t, tt.wantAfter, ch.After)
			if ok {
				assert.Equal(t, "T1", ch.ID)
			}
		})
	}
}

func TestToChange_DeleteWithoutPreImage(t *testing.T) {
	_, ok := toChange(event[doc]{OperationType: "delete"}, docKey)
	assert.False(t, ok)
}

func TestToChange_UpdateWithoutPreImage(t *testing.T) {
	after := &doc{ID: "T1", Status: "COMPLETED"}

	for _, op := range []string{"update", "replace"} {
		t.Run(op, func(t *testing.T) {
			ch, ok := toChange(event[doc]{OperationType: op, FullDocument: after}, docKey)
			assert.False(t, ok)
			assert.Nil(t, ch.Before)
			assert.Nil(t, ch.After)
		})
	}
}

func TestToChange_UpdateWithoutPostImage(t *testing.T) {
	before := &doc{ID: "T1", Status: "PENDING"}

	ch, ok := toChange(event[doc]{OperationType: "update", FullDocumentBeforeChange: before}, docKey)
	assert.False(t, ok)
	assert.Nil(t, ch.Before)
}

func TestToChange_InsertWithoutDocument(t *testing.T) {
	_, ok := toChange(event[doc]{OperationType: "insert"}, docKey)
	assert.False(t, ok)
}

func TestIsWrite(t *testing.T) {
	assert.True(t, isWrite("update"))
	assert.True(t, isWrite("delete"))
	assert.False(t, isWrite("invalidate"))
	assert.False(t, isWrite("drop"))
}
