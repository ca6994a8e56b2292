// Package resource shapes models into the maps sent to clients, so the
// JSON a page returns is decided in one place rather than by struct tags.
//
//	var productResource resource.Transformer[models.Product] = resource.Func[models.Product](func(p models.Product) resource.Map {
//	    return resource.Map{
//	        "id":    p.ID,
//	        "name":  p.Name,
//	        "links": resource.Map{"add": fmt.Sprintf("/cart/%d", p.ID)},
//	    }
//	})
//
//	c.Success(resource.Map{"products": resource.Collection(productResource, products)})
package resource

// Map is a convenient alias for the output of ToArray.
type Map = map[string]interface{}

// Transformer converts one model into a Map.
type Transformer[T any] interface {
	ToArray(v T) Map
}

// Func adapts a plain function to Transformer.
type Func[T any] func(v T) Map

func (f Func[T]) ToArray(v T) Map { return f(v) }

// One transforms a single model.
func One[T any](t Transformer[T], v T) Map {
	return t.ToArray(v)
}

// Collection transforms every item. The result is never nil, so an empty
// collection encodes as [] rather than null.
func Collection[T any](t Transformer[T], items []T) []Map {
	out := make([]Map, 0, len(items))
	for _, v := range items {
		out = append(out, t.ToArray(v))
	}
	return out
}
