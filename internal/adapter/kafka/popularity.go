package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
)

var (
	_ port.PopularityProcessor = (*PopularityProcessor)(nil)
	_ port.PopularityReader    = (*PopularityView)(nil)
)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	if p.waitForReady(ctx) {
		log.Info("running")
	}
}

// runProc blocks until the processor stops and then cancels the app context.
func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "runProc"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	if err := p.gp.Run(ctx); err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) bool {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	switch {
	case err == nil:
		return true
	case errors.Is(err, context.Canceled):
	default:
		log.Error("fall down while preparing", "err", err)
	}
	return false
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// An orderPlacedCodec used for serde [schema.OrderPlacedV1]
type orderPlacedCodec struct {
	serde Serde
}

func (c orderPlacedCodec) Encode(v any) ([]byte, error) {
	const op = "orderPlacedCodec.Encode"
	if _, ok := v.(schema.OrderPlacedV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c orderPlacedCodec) Decode(data []byte) (any, error) {
	const op = "orderPlacedCodec.Decode"
	var s schema.OrderPlacedV1
	if err := c.serde.Decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A quantity is the total ordered units of one product detail.
type quantity int64

// A quantityCodec used for serde [quantity]
type quantityCodec struct{}

func (quantityCodec) Encode(v any) ([]byte, error) {
	const op = "quantityCodec.Encode"
	q, ok := v.(quantity)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt(nil, int64(q), 10), nil
}

func (quantityCodec) Decode(data []byte) (any, error) {
	const op = "quantityCodec.Decode"
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return quantity(n), nil
}

func detailKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// A PopularityProcessor sums ordered quantity per product detail.
//
// Order events arrive keyed by order number, so each one is looped back
// under its product detail id before it is counted.
type PopularityProcessor struct {
	opPrefix string
	proc     processor
}

func NewPopularityProcessor(
	seedBrokers []string,
	ordersStream string,
	group string,
	orderSerde Serde,
	opts ...goka.ProcessorOption,
) (*PopularityProcessor, error) {
	const op = "NewPopularityProcessor"

	p := PopularityProcessor{opPrefix: "PopularityProcessor"}
	codec := orderPlacedCodec{orderSerde}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(goka.Stream(ordersStream), codec, p.rekeyFn),
		goka.Loop(codec, p.countFn),
		goka.Persist(quantityCodec{}),
	)

	opts = append([]goka.ProcessorOption{withNonlogProcOpt()}, opts...)
	gp, err := goka.NewProcessor(seedBrokers, gg, opts...)
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{opPrefix: p.opPrefix, gp: gp}
	return &p, nil
}

func (p *PopularityProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *PopularityProcessor) Close() {
	p.proc.close()
}

func (p *PopularityProcessor) rekeyFn(ctx goka.Context, msg any) {
	event, ok := msg.(schema.OrderPlacedV1)
	if !ok {
		return
	}
	ctx.Loopback(detailKey(event.ProductDetailID), event)
}

func (p *PopularityProcessor) countFn(ctx goka.Context, msg any) {
	const op = "countFn"

	event, ok := msg.(schema.OrderPlacedV1)
	if !ok || event.Quantity <= 0 {
		return
	}

	total, _ := ctx.Value().(quantity)
	total += quantity(event.Quantity)
	ctx.SetValue(total)

	slog.Debug("popularity updated",
		"op", makeOp(p.opPrefix, op),
		"productDetailID", ctx.Key(),
		"total", int64(total),
	)
}

// A PopularityView reads the popularity group table.
type PopularityView struct {
	gv *goka.View
}

func NewPopularityView(
	seedBrokers []string, group string, opts ...goka.ViewOption,
) (*PopularityView, error) {
	const op = "NewPopularityView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		quantityCodec{},
		opts...,
	)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &PopularityView{gv}, nil
}

// Run keeps the view in sync until ctx is done.
func (v *PopularityView) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "PopularityView.Run"
	log := slog.With("op", op)

	defer wg.Done()
	defer stopFn()

	if err := v.gv.Run(ctx); err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

// Popularity returns zero for product details that were never ordered.
func (v *PopularityView) Popularity(ctx context.Context, id int64) (int64, error) {
	const op = "PopularityView.Popularity"

	if err := ctx.Err(); err != nil {
		return 0, opErr(err, op)
	}

	val, err := v.gv.Get(detailKey(id))
	if err != nil {
		return 0, opErr(err, op)
	}
	if val == nil {
		return 0, nil
	}

	q, ok := val.(quantity)
	if !ok {
		return 0, opErr(fmt.Errorf("%w: %T", ErrInvalidValueType, val), op)
	}
	return int64(q), nil
}
