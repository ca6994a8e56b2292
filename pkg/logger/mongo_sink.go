package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	sinkQueueSize = 4096
	sinkBatchSize = 50
	sinkFlushTick = 2 * time.Second
)

// Entry is the document shape stored for each log record.
type Entry struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

type batchWriter interface {
	InsertMany(ctx context.Context, docs []interface{}) error
}

type collectionWriter struct{ col *mongo.Collection }

func (c collectionWriter) InsertMany(ctx context.Context, docs []interface{}) error {
	_, err := c.col.InsertMany(ctx, docs)
	return err
}

// sinkCore is shared by a MongoSink and every handler derived from it with
// WithAttrs or WithGroup.
type sinkCore struct {
	w       batchWriter
	disc    func(context.Context) error
	queue   chan Entry
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// MongoSink is a slog.Handler that ships records to a MongoDB collection in
// batches from a background goroutine. Handle never blocks: records are
// dropped when the queue is full.
type MongoSink struct {
	core   *sinkCore
	attrs  []slog.Attr
	prefix string
}

// NewMongoSink connects to uri and writes into db.collection.
func NewMongoSink(uri, db, collection string) (*MongoSink, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).
		SetConnectTimeout(5*time.Second).
		SetServerSelectionTimeout(5*time.Second).
		SetMaxPoolSize(10))
	if err != nil {
		return nil, fmt.Errorf("logger: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("logger: mongo ping: %w", err)
	}

	col := client.Database(db).Collection(collection)
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})

	return newSink(collectionWriter{col: col}, client.Disconnect), nil
}

func newSink(w batchWriter, disc func(context.Context) error) *MongoSink {
	core := &sinkCore{
		w:       w,
		disc:    disc,
		queue:   make(chan Entry, sinkQueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go core.run()
	return &MongoSink{core: core}
}

func (s *MongoSink) Enabled(context.Context, slog.Level) bool { return true }

func (s *MongoSink) Handle(_ context.Context, r slog.Record) error {
	e := Entry{Time: r.Time, Level: r.Level.String(), Msg: r.Message, Attrs: bson.M{}}

	add := func(a slog.Attr) bool {
		if a.Key == "request_id" {
			e.RequestID = a.Value.String()
			return true
		}
		e.Attrs[s.prefix+a.Key] = a.Value.Resolve().Any()
		return true
	}
	for _, a := range s.attrs {
		add(a)
	}
	r.Attrs(add)

	select {
	case s.core.queue <- e:
	default:
	}
	return nil
}

func (s *MongoSink) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(s.attrs)+len(attrs))
	merged = append(merged, s.attrs...)
	for _, a := range attrs {
		if a.Key != "request_id" {
			a.Key = s.prefix + a.Key
		}
		merged = append(merged, a)
	}
	return &MongoSink{core: s.core, attrs: merged, prefix: s.prefix}
}

func (s *MongoSink) WithGroup(name string) slog.Handler {
	if strings.TrimSpace(name) == "" {
		return s
	}
	return &MongoSink{core: s.core, attrs: s.attrs, prefix: s.prefix + name + "."}
}

// Close flushes queued records and disconnects. Safe to call more than once.
func (s *MongoSink) Close() {
	s.core.once.Do(func() {
		close(s.core.done)
		<-s.core.stopped
		if s.core.disc != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.core.disc(ctx)
		}
	})
}

func (c *sinkCore) run() {
	defer close(c.stopped)

	ticker := time.NewTicker(sinkFlushTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, sinkBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = c.w.InsertMany(ctx, batch)
		cancel()
		batch = make([]interface{}, 0, sinkBatchSize)
	}

	for {
		select {
		case e := <-c.queue:
			batch = append(batch, e)
			if len(batch) >= sinkBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-c.done:
			for {
				select {
				case e := <-c.queue:
					batch = append(batch, e)
				default:
					flush()
					return
				}
			}
		}
	}
}
