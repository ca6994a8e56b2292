package controllers

import (
	"fmt"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/resource"
)

var productResource resource.Transformer[models.Product] = resource.Func[models.Product](func(p models.Product) resource.Map {
	return resource.Map{
		"id":    p.ID,
		"name":  p.Name,
		"image": p.Image,
		"price": p.Price,
		"links": resource.Map{
			"add":    fmt.Sprintf("/cart/%d", p.ID),
			"remove": fmt.Sprintf("/%d", p.ID),
		},
	}
})

var receiptResource resource.Transformer[services.Receipt] = resource.Func[services.Receipt](func(r services.Receipt) resource.Map {
	return resource.Map{
		"charge_id":   r.ChargeID,
		"amount":      r.AmountCharged,
		"description": r.Description,
		"items":       resource.Collection(productResource, r.Items),
	}
})
