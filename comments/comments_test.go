package comments_test

import (
	"encoding/json"
	"testing"

	"github.com/speakeasy-api/openapi-typemapper/comments"
	"github.com/speakeasy-api/openapi-typemapper/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWrap_Success(t *testing.T) {
	t.Parallel()

	value := sequencedmap.New(sequencedmap.NewElem[string, any]("type", "string"))

	tests := []struct {
		name            string
		activated       bool
		parentActivated bool
		commented       bool
	}{
		{name: "activated item under activated parent", activated: true, parentActivated: true, commented: false},
		{name: "deactivated item", activated: false, parentActivated: true, commented: true},
		{name: "activated item under deactivated parent", activated: true, parentActivated: false, commented: true},
		{name: "deactivated item under deactivated parent", activated: false, parentActivated: false, commented: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wrapped := comments.Wrap(value, tt.activated, tt.parentActivated)
			assert.Equal(t, tt.commented, comments.IsCommented(wrapped))

			unwrapped, ok := comments.Unwrap(wrapped)
			assert.Equal(t, tt.commented, ok)
			assert.Same(t, value, unwrapped)
		})
	}
}

func TestWrap_NilStaysNil(t *testing.T) {
	t.Parallel()

	var typedNil *sequencedmap.Map[string, any]

	assert.Nil(t, comments.Wrap(nil, false, false))
	assert.Nil(t, comments.Wrap(typedNil, false, true))
}

func TestWrap_AlreadyCommented(t *testing.T) {
	t.Parallel()

	once := comments.Wrap("value", false, true)
	twice := comments.Wrap(once, false, true)

	assert.Same(t, once, twice)
}

func TestCommented_MarshalJSON(t *testing.T) {
	t.Parallel()

	c := &comments.Commented{Value: sequencedmap.New(
		sequencedmap.NewElem[string, any]("type", "integer"),
		sequencedmap.NewElem[string, any]("minimum", 1),
	)}

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `{"x-deactivated":{"type":"integer","minimum":1}}`, string(data))
}

func TestCommented_MarshalYAML(t *testing.T) {
	t.Parallel()

	doc := sequencedmap.New(
		sequencedmap.NewElem[string, any]("type", "object"),
		sequencedmap.NewElem[string, any]("properties", sequencedmap.New(
			sequencedmap.NewElem[string, any]("id", &comments.Commented{Value: sequencedmap.New(
				sequencedmap.NewElem[string, any]("type", "integer"),
			)}),
		)),
	)

	data, err := yaml.Marshal(doc)
	require.NoError(t, err)

	assert.Contains(t, string(data), "# deactivated\n")

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				comments.DeactivatedKey: map[string]any{"type": "integer"},
			},
		},
	}, decoded)
}
