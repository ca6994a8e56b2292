package resource_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/resource"
)

type item struct {
	ID     int
	Secret string
}

var itemResource resource.Transformer[item] = resource.Func[item](func(v item) resource.Map {
	return resource.Map{"id": v.ID}
})

func TestOne(t *testing.T) {
	assert.Equal(t, resource.Map{"id": 7}, resource.One(itemResource, item{ID: 7, Secret: "x"}))
}

func TestCollection_EmptyEncodesAsArray(t *testing.T) {
	raw, err := json.Marshal(resource.Collection(itemResource, nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestCollection_KeepsOrder(t *testing.T) {
	got := resource.Collection(itemResource, []item{{ID: 2}, {ID: 1}})
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0]["id"])
	assert.Equal(t, 1, got[1]["id"])
}
