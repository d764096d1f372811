package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

// ConfigureGoka makes goka processors and views dial brokers over tlsConfig.
// A nil config keeps plaintext.
func ConfigureGoka(tlsConfig *tls.Config) {
	if tlsConfig == nil {
		return
	}
	cfg := goka.DefaultConfig()
	cfg.Net.TLS.Enable = true
	cfg.Net.TLS.Config = tlsConfig
	goka.ReplaceGlobalConfig(cfg)
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func catalogEventToSchemaV1(v domain.CatalogEvent) schema.CatalogEventV1 {
	return schema.CatalogEventV1{
		Entity:     v.Entity,
		EntityID:   v.EntityID,
		Action:     v.Action,
		OccurredAt: v.OccurredAt.UnixMilli(),
	}
}

func orderPlacedToSchemaV1(v domain.OrderPlacedEvent) schema.OrderPlacedV1 {
	return schema.OrderPlacedV1{
		OrderNo:         v.OrderNo,
		ProductDetailID: v.ProductDetailID,
		CustomerID:      v.CustomerID,
		Quantity:        int32(v.Quantity),
		OccurredAt:      v.OccurredAt.UnixMilli(),
	}
}
