package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"mk-orders/internal/itemset"
	"mk-orders/internal/lifecycle"
	"mk-orders/internal/models"
	"mk-orders/internal/session"
)

type saverStub struct {
	mu        sync.Mutex
	writes    []models.Lines
	submitted []string
	updateErr error
	order     models.Order
	getErr    error
}

func (s *saverStub) UpdateItems(_ context.Context, _ string, items any) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return models.Order{}, s.updateErr
	}
	s.writes = append(s.writes, itemset.Normalize(items))
	return models.Order{}, nil
}

func (s *saverStub) Submit(_ context.Context, id string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted = append(s.submitted, id)
	return models.Order{ID: id, Status: models.StatusPending}, nil
}

func (s *saverStub) GetOrder(_ context.Context, id string) (models.Order, error) {
	if s.getErr != nil {
		return models.Order{}, s.getErr
	}
	o := s.order
	o.ID = id
	return o, nil
}

func (s *saverStub) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.writes)
}

func TestDebouncer_OnlyLastRuns(t *testing.T) {
	d := session.NewDebouncer(20 * time.Millisecond)

	var ran, last int32
	for i := int32(1); i <= 5; i++ {
		i := i
		d.Schedule(func() {
			atomic.AddInt32(&ran, 1)
			atomic.StoreInt32(&last, i)
		})
	}
	require.True(t, d.Pending())

	require.Eventually(t, func() bool { return atomic.LoadInt32(&ran) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	require.EqualValues(t, 1, atomic.LoadInt32(&ran))
	require.EqualValues(t, 5, atomic.LoadInt32(&last))
	require.False(t, d.Pending())
}

func TestDebouncer_CancelPreventsRun(t *testing.T) {
	d := session.NewDebouncer(10 * time.Millisecond)

	var ran int32
	d.Schedule(func() { atomic.AddInt32(&ran, 1) })
	require.True(t, d.Cancel())
	require.False(t, d.Cancel())

	time.Sleep(30 * time.Millisecond)
	require.Zero(t, atomic.LoadInt32(&ran))
}

func TestDraft_RapidEditsCoalesceIntoOneWrite(t *testing.T) {
	saver := &saverStub{}
	d := session.NewDraft("o1", nil, saver, 30*time.Millisecond)
	defer d.Close()

	d.Set("Jackets|Alpine|Brown|S", 1)
	d.Set("Jackets|Alpine|Brown|S", 2)
	d.Set("Jackets|Alpine|Brown|M", 4)
	d.Set("Jackets|Alpine|Brown|S", 3)
	d.Set("Jackets|Alpine|Brown|M", 0)

	require.True(t, d.Dirty())
	require.Equal(t, itemset.Summary{TotalItems: 3, TotalLines: 1}, d.Summary())

	require.Eventually(t, func() bool { return saver.writeCount() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	require.Equal(t, 1, saver.writeCount())
	require.Equal(t, models.Lines{{Key: "Jackets|Alpine|Brown|S", Qty: 3}}, saver.writes[0])
	require.False(t, d.Dirty())
}

func TestDraft_FlushWritesNowAndCancelsPending(t *testing.T) {
	saver := &saverStub{}
	d := session.NewDraft("o1", models.Lines{{Key: "A|B|C|S", Qty: 1}}, saver, time.Hour)
	defer d.Close()

	require.NoError(t, d.Flush(context.Background()))
	require.Zero(t, saver.writeCount(), "nothing to write before the first edit")

	d.Set("A|B|C|M", 2)
	d.Remove("A|B|C|S")
	require.NoError(t, d.Flush(context.Background()))
	require.Equal(t, 1, saver.writeCount())
	require.Equal(t, models.Lines{{Key: "A|B|C|M", Qty: 2}}, saver.writes[0])

	d.Clear()
	require.Empty(t, d.Snapshot())
}

func TestDraft_SubmitFlushesFirst(t *testing.T) {
	saver := &saverStub{}
	d := session.NewDraft("o1", nil, saver, time.Hour)

	d.Set("A|B|C|S", 5)
	o, err := d.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, o.Status)
	require.Equal(t, 1, saver.writeCount())
	require.Equal(t, []string{"o1"}, saver.submitted)

	d.Set("A|B|C|S", 9)
	require.False(t, d.Dirty(), "closed sessions ignore edits")
	_, err = d.Submit(context.Background())
	require.ErrorIs(t, err, session.ErrClosed)
}

func TestDraft_CloseDropsPendingWrite(t *testing.T) {
	saver := &saverStub{}
	d := session.NewDraft("o1", nil, saver, 10*time.Millisecond)

	d.Set("A|B|C|S", 5)
	d.Close()
	time.Sleep(30 * time.Millisecond)
	require.Zero(t, saver.writeCount())
}

func TestDraft_WriteErrorIsReported(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	saver := &saverStub{updateErr: lifecycle.ErrStoreUnavailable}
	errs := make(chan error, 1)
	d := session.NewDraft("o1", nil, saver, 10*time.Millisecond, session.WithErrorHandler(func(err error) { errs <- err }))
	defer d.Close()

	d.Set("A|B|C|S", 1)

	select {
	case err := <-errs:
		require.ErrorIs(t, err, lifecycle.ErrStoreUnavailable)
	case <-time.After(time.Second):
		t.Fatal("error handler not called")
	}
	require.True(t, d.Dirty())

	require.Eventually(t, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Level == log.ErrorLevel && e.Message == "debounced save failed" && e.Data["id"] == "o1" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestRegistry_OpenLookupDrop(t *testing.T) {
	ctx := context.Background()
	saver := &saverStub{order: models.Order{Status: models.StatusDraft, Items: models.Lines{{Key: "A|B|C|S", Qty: 2}}}}
	r := session.NewRegistry(saver, time.Hour, lifecycle.Policy{})

	d, err := r.Open(ctx, "o1")
	require.NoError(t, err)
	require.Equal(t, 2, d.Summary().TotalItems)

	again, err := r.Open(ctx, "o1")
	require.NoError(t, err)
	require.Same(t, d, again)

	d.Set("A|B|C|S", 3)
	require.NoError(t, r.FlushAll(ctx))
	require.Equal(t, 1, saver.writeCount())

	r.Drop("o1")
	_, ok := r.Lookup("o1")
	require.False(t, ok)
	require.Zero(t, r.Len())
}

func TestRegistry_OpenRejectsLockedOrders(t *testing.T) {
	ctx := context.Background()

	saver := &saverStub{order: models.Order{Status: models.StatusAccepted}}
	_, err := session.NewRegistry(saver, time.Hour, lifecycle.Policy{}).Open(ctx, "o1")
	require.ErrorIs(t, err, lifecycle.ErrInvalidState)

	saver = &saverStub{order: models.Order{Status: models.StatusPending}}
	_, err = session.NewRegistry(saver, time.Hour, lifecycle.Policy{}).Open(ctx, "o1")
	require.ErrorIs(t, err, lifecycle.ErrInvalidState)
	_, err = session.NewRegistry(saver, time.Hour, lifecycle.Policy{EditablePending: true}).Open(ctx, "o1")
	require.NoError(t, err)

	saver = &saverStub{getErr: lifecycle.ErrNotFound}
	_, err = session.NewRegistry(saver, time.Hour, lifecycle.Policy{}).Open(ctx, "o1")
	require.True(t, errors.Is(err, lifecycle.ErrNotFound))
}

type blockingSaver struct {
	saverStub
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSaver) UpdateItems(ctx context.Context, id string, items any) (models.Order, error) {
	b.entered <- struct{}{}
	<-b.release
	return b.saverStub.UpdateItems(ctx, id, items)
}

func TestDraft_CloseWaitsForInFlightWrite(t *testing.T) {
	saver := &blockingSaver{entered: make(chan struct{}, 1), release: make(chan struct{})}
	d := session.NewDraft("o1", nil, saver, time.Millisecond)

	d.Set("A|B|C|S", 2)
	<-saver.entered

	closed := make(chan struct{})
	go func() {
		d.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a write was still in flight")
	case <-time.After(30 * time.Millisecond):
	}

	close(saver.release)
	<-closed
	require.Equal(t, 1, saver.writeCount())

	// a write that had not started when Close ran never reaches the saver
	d.Set("A|B|C|S", 7)
	require.ErrorIs(t, d.Flush(context.Background()), session.ErrClosed)
	require.Equal(t, 1, saver.writeCount())
}
