package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/S0me0neR0man/headstash/internal/client"
	"github.com/S0me0neR0man/headstash/internal/grpcproto"
)

const (
	displayCounter = 100
)

type simpleRecord struct {
	guid     string
	pairs    []grpcproto.Pair
	deleted  bool
	appended bool
}

func (s simpleRecord) String() string {
	if s.guid == "" {
		return "uninitialized"
	}
	return fmt.Sprintf("guid=%s deleted=%v appended=%v pairs=%v", s.guid, s.deleted, s.appended, s.pairs)
}

func newSimpleRecord() simpleRecord {
	i := rand.Intn(100)
	return simpleRecord{
		pairs: []grpcproto.Pair{
			{Field: "Content-Length", Value: strconv.Itoa(i)},
			{Field: "Content-Type", Value: "text/plain"},
			{Field: "X-Text", Value: "sample text" + strconv.Itoa(i)},
			{Field: "X-Index-" + strconv.Itoa(i), Value: strconv.Itoa(i)},
		},
	}
}

// splitChunks cuts s into random pieces
func splitChunks(s string) [][]byte {
	var chunks [][]byte
	for len(s) > 0 {
		n := rand.Intn(len(s)) + 1
		chunks = append(chunks, []byte(s[:n]))
		s = s[n:]
	}
	return chunks
}

type Checker struct {
	toDisplay chan string

	toGet      chan simpleRecord
	toAppend   chan simpleRecord
	toRemove   chan simpleRecord
	toGetAfter chan simpleRecord

	wg sync.WaitGroup

	client *client.GRPCClient
	sugar  *zap.SugaredLogger
}

func NewChecker(addr, tok string, logger *zap.Logger) (*Checker, error) {
	c, err := client.NewGRPClient(addr, tok)
	if err != nil {
		return nil, err
	}

	return &Checker{
		client:     c,
		sugar:      logger.Sugar(),
		toDisplay:  make(chan string),
		toGet:      make(chan simpleRecord),
		toAppend:   make(chan simpleRecord),
		toRemove:   make(chan simpleRecord),
		toGetAfter: make(chan simpleRecord),
	}, nil
}

func (c *Checker) Go(ctx context.Context) {
	c.wg.Add(12)

	go c.display(ctx)

	go c.insert(ctx)
	go c.insert(ctx)
	go c.get(ctx)
	go c.get(ctx)
	go c.get(ctx)
	go c.getAfter(ctx)
	go c.getAfter(ctx)
	go c.append(ctx)
	go c.append(ctx)
	go c.remove(ctx)
	go c.remove(ctx)
}

func (c *Checker) Wait() error {
	c.wg.Wait()
	return c.client.Close()
}

// send forwards rec unless ctx is done first
func send(ctx context.Context, to chan<- simpleRecord, rec simpleRecord) bool {
	select {
	case <-ctx.Done():
		return false
	case to <- rec:
		return true
	}
}

func (c *Checker) tick(ctx context.Context, count *int, mark string) {
	*count++
	if *count < displayCounter {
		return
	}
	*count = 0
	select {
	case <-ctx.Done():
	case c.toDisplay <- mark:
	}
}

func (c *Checker) display(ctx context.Context) {
	defer c.wg.Done()
	c.sugar.Infow("display start")

	for {
		select {
		case <-ctx.Done():
			c.sugar.Infow("display done")
			return
		case s := <-c.toDisplay:
			c.sugar.Debugw("toDisplay", "s", s)
			n, err := fmt.Fprint(os.Stdout, s)
			if err != nil {
				c.sugar.Errorw("fprintf stdout", "err", err, "n", n)
			}
		}
	}
}

func (c *Checker) insert(ctx context.Context) {
	defer c.wg.Done()

	count := 0
	c.sugar.Infow("insert start")

	for {
		select {
		case <-ctx.Done():
			c.sugar.Infow("insert done")
			return
		default:
			rec := newSimpleRecord()
			var err error
			rec.guid, err = c.client.Insert(ctx, rec.pairs)
			if err != nil {
				if ctx.Err() == nil {
					c.sugar.Errorw("insert", "error", err)
				}
				continue
			}
			c.sugar.Debugw("insert ok", "rec", rec)
			c.tick(ctx, &count, "I")
			send(ctx, c.toGet, rec)
		}
	}
}

func (c *Checker) get(ctx context.Context) {
	defer c.wg.Done()

	c.sugar.Infow("get start")
	count := 0

	for {
		select {
		case <-ctx.Done():
			c.sugar.Infow("get done")
			return

		case rec := <-c.toGet:
			c.sugar.Debugw("get <-toGet", "rec", rec)
			pairs, err := c.client.Get(ctx, rec.guid)
			if err != nil {
				c.sugar.Errorw("get", "error", err)
				continue
			}
			c.compare(rec.guid, rec.pairs, pairs)

			// lookup ignores case
			value, err := c.client.Find(ctx, rec.guid, "x-text")
			if err != nil {
				c.sugar.Errorw("find", "error", err)
			} else if value != rec.pairs[2].Value {
				c.sugar.Errorw("find not equal", "guid", rec.guid, "before", rec.pairs[2].Value, "after", value)
			}

			c.tick(ctx, &count, "G")

			if rand.Intn(2) == 0 {
				send(ctx, c.toRemove, rec)
			} else {
				send(ctx, c.toAppend, rec)
			}
		}
	}
}

func (c *Checker) append(ctx context.Context) {
	defer c.wg.Done()

	c.sugar.Infow("append start")
	count := 0

	for {
		select {
		case <-ctx.Done():
			c.sugar.Infow("append done")
			return
		case rec := <-c.toAppend:
			c.sugar.Debugw("append <-toAppend ok", "rec", rec)
			p := grpcproto.Pair{Field: "X-Appended", Value: strconv.Itoa(rand.Intn(1000))}

			var err error
			if rand.Intn(2) == 0 {
				err = c.client.Append(ctx, rec.guid, p.Field, p.Value)
			} else {
				err = c.client.AppendChunks(ctx, rec.guid, splitChunks(p.Field), splitChunks(p.Value))
			}
			if err != nil {
				c.sugar.Errorw("append", "error", err)
				continue
			}

			rec.pairs = append(rec.pairs, p)
			rec.appended = true
			c.tick(ctx, &count, "U")
			send(ctx, c.toGetAfter, rec)
		}
	}
}

func (c *Checker) remove(ctx context.Context) {
	defer c.wg.Done()

	c.sugar.Infow("remove start")
	count := 0

	for {
		select {
		case <-ctx.Done():
			c.sugar.Infow("remove done")
			return
		case rec := <-c.toRemove:
			c.sugar.Debugw("remove <-toRemove ok", "rec", rec)
			err := c.client.Remove(ctx, rec.guid)
			if err != nil {
				c.sugar.Errorw("remove", "error", err)
				continue
			}

			rec.deleted = true
			c.tick(ctx, &count, "R")
			send(ctx, c.toGetAfter, rec)
		}
	}
}

func (c *Checker) getAfter(ctx context.Context) {
	defer c.wg.Done()

	c.sugar.Infow("getAfter start")
	count := 0

	for {
		select {
		case <-ctx.Done():
			c.sugar.Infow("getAfter done")
			return

		case rec := <-c.toGetAfter:
			c.sugar.Debugw("getAfter <-toGetAfter", "rec", rec)
			pairs, err := c.client.Get(ctx, rec.guid)
			if ctx.Err() != nil {
				continue
			}
			switch {
			case rec.deleted && status.Code(err) != codes.NotFound:
				c.sugar.Errorw("getAfter removed record", "guid", rec.guid, "error", err)
			case !rec.deleted && err != nil:
				c.sugar.Errorw("getAfter", "error", err)
			case !rec.deleted:
				c.compare(rec.guid, rec.pairs, pairs)
			}

			c.tick(ctx, &count, "A")
		}
	}
}

func (c *Checker) compare(guid string, before, after []grpcproto.Pair) {
	if len(before) != len(after) {
		c.sugar.Errorw("wrong length", "guid", guid, "before", len(before), "after", len(after))
		return
	}
	for i := range before {
		if before[i] != after[i] {
			c.sugar.Errorw("not equal", "guid", guid, "index", i, "before", before[i], "after", after[i])
		}
	}
}
