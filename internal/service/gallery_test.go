package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/imaging"
	"github.com/pkordes/triplog/internal/service"
)

// mockProcessor is a test double for service.ImageProcessor.
type mockProcessor struct {
	process func(ctx context.Context, raw []byte) (imaging.Artifact, error)
}

func (m *mockProcessor) Process(ctx context.Context, raw []byte) (imaging.Artifact, error) {
	return m.process(ctx, raw)
}

// echoProcessor turns each upload into "data:<raw>", sleeping longer for
// earlier uploads so completion order is the reverse of submission order.
func echoProcessor() *mockProcessor {
	return &mockProcessor{process: func(ctx context.Context, raw []byte) (imaging.Artifact, error) {
		if string(raw) == "bad" {
			return imaging.Artifact{}, domain.ErrMalformedInput
		}
		time.Sleep(time.Duration(10-len(raw)) * 5 * time.Millisecond)
		return imaging.Artifact{DataURL: "data:" + string(raw)}, nil
	}}
}

func TestGalleryService_AddImages_SubmissionOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, r := newCollection(t, tripWithItems("t1"))
	svc := service.NewGalleryService(c, echoProcessor())

	n, err := svc.AddImages(context.Background(), "t1", [][]byte{[]byte("1"), []byte("22"), []byte("333")})

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	got, _ := service.NewTripService(c).Find(context.Background(), "t1")
	assert.Equal(t, []string{"data:1", "data:22", "data:333"}, got.Images)
	assert.Equal(t, 1, r.saves, "a batch is persisted once")
}

func TestGalleryService_AddImages_PartialFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, _ := newCollection(t, tripWithItems("t1"))
	svc := service.NewGalleryService(c, echoProcessor())

	n, err := svc.AddImages(context.Background(), "t1", [][]byte{[]byte("ok"), []byte("bad")})

	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
	got, _ := service.NewTripService(c).Find(context.Background(), "t1")
	assert.Equal(t, []string{"data:ok"}, got.Images)
}

func TestGalleryService_AddImages_UnknownTrip(t *testing.T) {
	c, _ := newCollection(t)

	_, err := service.NewGalleryService(c, echoProcessor()).AddImages(context.Background(), "ghost", [][]byte{[]byte("x")})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestGalleryService_AddImages_TripDeletedMidFlight verifies that deleting a
// trip cancels its in-flight uploads and that nothing is appended afterwards.
func TestGalleryService_AddImages_TripDeletedMidFlight(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, r := newCollection(t, tripWithItems("t1"), tripWithItems("t2"))
	started := make(chan struct{})
	var once sync.Once
	blocking := &mockProcessor{process: func(ctx context.Context, raw []byte) (imaging.Artifact, error) {
		once.Do(func() { close(started) })
		<-ctx.Done()
		return imaging.Artifact{}, ctx.Err()
	}}
	svc := service.NewGalleryService(c, blocking)

	done := make(chan error, 1)
	go func() {
		_, err := svc.AddImages(context.Background(), "t1", [][]byte{[]byte("a"), []byte("b")})
		done <- err
	}()

	<-started
	require.NoError(t, service.NewTripService(c).Delete(context.Background(), "t1"))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, domain.ErrNotFound)
	case <-time.After(5 * time.Second):
		t.Fatal("AddImages did not return after the trip was deleted")
	}
	require.Len(t, r.stored, 1)
	assert.Equal(t, "t2", r.stored[0].ID)
}

func TestGalleryService_AddImages_CallerCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, _ := newCollection(t, tripWithItems("t1"))
	ctx, cancel := context.WithCancel(context.Background())
	proc := &mockProcessor{process: func(ctx context.Context, raw []byte) (imaging.Artifact, error) {
		cancel()
		<-ctx.Done()
		return imaging.Artifact{}, ctx.Err()
	}}

	_, err := service.NewGalleryService(c, proc).AddImages(ctx, "t1", [][]byte{[]byte("a")})

	assert.ErrorIs(t, err, context.Canceled)
	got, _ := service.NewTripService(c).Find(context.Background(), "t1")
	assert.Empty(t, got.Images)
}

// TestGalleryService_AddImages_RealDownscaler runs the production pipeline
// end to end: a 2000px PNG is stored at 1600px.
func TestGalleryService_AddImages_RealDownscaler(t *testing.T) {
	c, _ := newCollection(t, tripWithItems("t1"))
	svc := service.NewGalleryService(c, imaging.NewDownscaler())

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2000, 100))))

	n, err := svc.AddImages(context.Background(), "t1", [][]byte{buf.Bytes()})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	photo, err := svc.Photo(context.Background(), "t1", 0)
	require.NoError(t, err)
	assert.Equal(t, 1600, photo.Width)
	assert.Equal(t, 80, photo.Height)
}

func TestGalleryService_DeleteImage(t *testing.T) {
	trip := tripWithItems("t1")
	trip.Images = []string{"data:a", "data:b", "data:c"}
	c, r := newCollection(t, trip)
	svc := service.NewGalleryService(c, echoProcessor())
	ctx := context.Background()

	require.NoError(t, svc.DeleteImage(ctx, "t1", 1))
	require.NoError(t, svc.DeleteImage(ctx, "t1", 7))
	require.NoError(t, svc.DeleteImage(ctx, "t1", -1))

	got, _ := service.NewTripService(c).Find(ctx, "t1")
	assert.Equal(t, []string{"data:a", "data:c"}, got.Images)
	assert.Equal(t, 1, r.saves)
}

func TestGalleryService_Photo_Navigation(t *testing.T) {
	trip := tripWithItems("t1")
	trip.Images = []string{"data:a", "data:b", "data:c"}
	c, _ := newCollection(t, trip)
	svc := service.NewGalleryService(c, echoProcessor())

	p, err := svc.Photo(context.Background(), "t1", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Prev)
	assert.Equal(t, 1, p.Next)
	assert.Equal(t, 3, p.Count)
	assert.Equal(t, "data:a", p.DataURL)
}

func TestGalleryService_Photo_EmptyGallery(t *testing.T) {
	c, _ := newCollection(t, tripWithItems("t1"))

	_, err := service.NewGalleryService(c, echoProcessor()).Photo(context.Background(), "t1", 0)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
