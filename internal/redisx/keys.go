package redisx

import "time"

const (
	// Cache a serialized order document: order:{order_id}
	KeyOrder = "order:%s"

	// Cache a serialized product document: product:{product_id}
	KeyProduct = "product:%s"
)

var (
	TTLOrderCache   = 5 * time.Minute
	TTLProductCache = 1 * time.Minute
)
