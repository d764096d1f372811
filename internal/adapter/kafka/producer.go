package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	_ port.CatalogEventPublisher = EventsProducer{}
	_ port.OrderEventPublisher   = EventsProducer{}
)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(ctx context.Context, rs ...*kgo.Record) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

type ProducerOpt func(*producerOpts) error

type topicEncoder struct {
	topic   string
	encoder Encoder
}

type producerOpts struct {
	cl      ProducerClient
	catalog topicEncoder
	orders  topicEncoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, tlsConfig *tls.Config,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kopts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		}
		if tlsConfig != nil {
			kopts = append(kopts, kgo.DialTLSConfig(tlsConfig))
		}

		cl, err := kgo.NewClient(kopts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// ProducerWithClientOpt uses an already constructed client.
func ProducerWithClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func CatalogEventsOpt(topic string, encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if topic == "" || encoder == nil {
			return errors.New("catalog events topic and encoder are required")
		}
		opts.catalog = topicEncoder{topic, encoder}
		return nil
	}
}

func OrderEventsOpt(topic string, encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if topic == "" || encoder == nil {
			return errors.New("order events topic and encoder are required")
		}
		opts.orders = topicEncoder{topic, encoder}
		return nil
	}
}

// EventsProducer publishes catalog changes keyed by entity id and placed
// order lines keyed by order number.
type EventsProducer struct {
	producer producer
	catalog  topicEncoder
	orders   topicEncoder
	opPrefix string
}

// NewEventsProducer requires a client option, [CatalogEventsOpt] and
// [OrderEventsOpt].
func NewEventsProducer(opts ...ProducerOpt) (EventsProducer, error) {
	const op = "NewEventsProducer"

	if len(opts) != 3 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return EventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "EventsProducer"
	return EventsProducer{
		producer: producer{opPrefix: opPrefix, cl: options.cl},
		catalog:  options.catalog,
		orders:   options.orders,
		opPrefix: opPrefix,
	}, nil
}

func (p EventsProducer) Close() {
	p.producer.close()
}

func (p EventsProducer) PublishCatalogEvent(
	ctx context.Context, evt domain.CatalogEvent,
) error {
	const op = "PublishCatalogEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	b, err := p.catalog.encoder.Encode(catalogEventToSchemaV1(evt))
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r := &kgo.Record{
		Topic: p.catalog.topic,
		Key:   strconv.AppendInt(nil, evt.EntityID, 10),
		Value: b,
	}
	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p EventsProducer) PublishOrderPlaced(
	ctx context.Context, evts []domain.OrderPlacedEvent,
) error {
	const op = "PublishOrderPlaced"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	if len(evts) == 0 {
		return nil
	}

	rs, err := p.orderRecords(evts)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, rs...); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p EventsProducer) orderRecords(
	evts []domain.OrderPlacedEvent,
) ([]*kgo.Record, error) {
	const op = "orderRecords"

	rs := make([]*kgo.Record, 0, len(evts))
	for _, evt := range evts {
		b, err := p.orders.encoder.Encode(orderPlacedToSchemaV1(evt))
		if err != nil {
			return nil, opErr(err, p.opPrefix, op)
		}
		rs = append(rs, &kgo.Record{
			Topic: p.orders.topic,
			Key:   []byte(evt.OrderNo),
			Value: b,
		})
	}
	return rs, nil
}
