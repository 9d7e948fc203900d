package formsynergy_test

import (
	"testing"

	"github.com/fivetwenty-io/formsynergy-client/pkg/formsynergy"
	"github.com/stretchr/testify/assert"
)

func TestIndex(t *testing.T) {
	t.Parallel()

	object := map[string]any{"lead": "joe"}
	list := []any{"a", "b"}

	tests := []struct {
		name   string
		value  any
		index  string
		want   any
		wantOK bool
	}{
		{name: "object key", value: object, index: "lead", want: "joe", wantOK: true},
		{name: "missing object key", value: object, index: "other", wantOK: false},
		{name: "array position", value: list, index: "1", want: "b", wantOK: true},
		{name: "array out of range", value: list, index: "2", wantOK: false},
		{name: "array non numeric", value: list, index: "x", wantOK: false},
		{name: "scalar", value: "text", index: "0", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := formsynergy.Index(tt.value, tt.index)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResponse_DataMap(t *testing.T) {
	t.Parallel()

	var nilResponse *formsynergy.Response
	assert.Nil(t, nilResponse.DataMap())

	resp := &formsynergy.Response{Data: map[string]any{"objid": "o1"}}
	assert.Equal(t, "o1", resp.DataMap()["objid"])

	resp = &formsynergy.Response{Data: []any{1.0}}
	assert.Nil(t, resp.DataMap())
}

func TestResponse_Payload(t *testing.T) {
	t.Parallel()

	var nilResponse *formsynergy.Response
	assert.Nil(t, nilResponse.Payload())

	resp := &formsynergy.Response{Data: map[string]any{"objid": "o1", "data": []any{"a"}}}
	assert.Equal(t, []any{"a"}, resp.Payload())

	resp = &formsynergy.Response{Data: map[string]any{"objid": "o1"}}
	assert.Equal(t, map[string]any{"objid": "o1"}, resp.Payload())
}

func TestIncludes(t *testing.T) {
	t.Parallel()

	assert.True(t, formsynergy.Includes("Lead", "new-leads-form"))
	assert.False(t, formsynergy.Includes("strategy", "new-leads-form"))
	assert.False(t, formsynergy.Includes("", "new-leads-form"))
	assert.False(t, formsynergy.Includes("lead", ""))
}
