package schema

const CatalogEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront.catalog",
	"name": "catalog_event",
	"fields": [
		{"name": "entity", "type": "string"},
		{"name": "entity_id", "type": "long"},
		{"name": "action", "type": "string"},
		{"name": "occurred_at_ms", "type": "long"}
	]
}`

const OrderPlacedSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront.orders",
	"name": "order_placed",
	"fields": [
		{"name": "order_no", "type": "string"},
		{"name": "product_detail_id", "type": "long"},
		{"name": "customer_id", "type": "long"},
		{"name": "quantity", "type": "int"},
		{"name": "occurred_at_ms", "type": "long"}
	]
}`

type (
	CatalogEventV1 struct {
		Entity     string `avro:"entity"`
		EntityID   int64  `avro:"entity_id"`
		Action     string `avro:"action"`
		OccurredAt int64  `avro:"occurred_at_ms"`
	}

	OrderPlacedV1 struct {
		OrderNo         string `avro:"order_no"`
		ProductDetailID int64  `avro:"product_detail_id"`
		CustomerID      int64  `avro:"customer_id"`
		Quantity        int32  `avro:"quantity"`
		OccurredAt      int64  `avro:"occurred_at_ms"`
	}
)
