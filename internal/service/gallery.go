package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/imaging"
)

// ImageProcessor turns raw upload bytes into a stored artifact.
// *imaging.Downscaler is the production implementation.
type ImageProcessor interface {
	Process(ctx context.Context, raw []byte) (imaging.Artifact, error)
}

// GalleryService implements the per-trip image gallery.
type GalleryService struct {
	c       *Collection
	proc    ImageProcessor
	workers int
}

// NewGalleryService constructs a GalleryService. Uploads are processed with
// up to GOMAXPROCS images in flight.
func NewGalleryService(c *Collection, proc ImageProcessor) *GalleryService {
	return &GalleryService{c: c, proc: proc, workers: runtime.GOMAXPROCS(0)}
}

// AddImages processes each upload independently and appends the results to
// the trip's gallery in submission order, with a single save.
//
// Images that fail to decode are skipped; their errors are joined into the
// returned error while the rest are still stored. If the trip is deleted while
// images are being processed, the work is cancelled, nothing is stored and
// domain.ErrNotFound is returned.
func (s *GalleryService) AddImages(ctx context.Context, tripID string, uploads [][]byte) (int, error) {
	if _, err := s.c.find(tripID); err != nil {
		return 0, fmt.Errorf("service.GalleryService.AddImages: %w", err)
	}

	taskCtx, release := s.c.track(ctx, tripID)
	defer release()

	results := make([]string, len(uploads))
	failures := make([]error, len(uploads))

	g, gctx := errgroup.WithContext(taskCtx)
	g.SetLimit(s.workers)
	for i, raw := range uploads {
		g.Go(func() error {
			art, err := s.proc.Process(gctx, raw)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failures[i] = fmt.Errorf("image %d: %w", i+1, err)
				return nil
			}
			results[i] = art.DataURL
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() == nil {
			// Our own context is alive, so the trip's tasks were cancelled
			// by a delete.
			return 0, fmt.Errorf("service.GalleryService.AddImages: %w", domain.ErrNotFound)
		}
		return 0, fmt.Errorf("service.GalleryService.AddImages: %w", err)
	}

	var added int
	err := s.c.mutateTrip(ctx, tripID, func(t *domain.Trip) error {
		added = 0
		for _, url := range results {
			if url != "" {
				t.Images = append(t.Images, url)
				added++
			}
		}
		if added == 0 {
			return errUnchanged
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("service.GalleryService.AddImages: %w", err)
	}

	if failed := errors.Join(failures...); failed != nil {
		return added, fmt.Errorf("service.GalleryService.AddImages: %w", failed)
	}
	return added, nil
}

// DeleteImage removes the image at index. An out-of-range index is a no-op.
func (s *GalleryService) DeleteImage(ctx context.Context, tripID string, index int) error {
	err := s.c.mutateTrip(ctx, tripID, func(t *domain.Trip) error {
		if index < 0 || index >= len(t.Images) {
			return errUnchanged
		}
		t.Images = append(t.Images[:index:index], t.Images[index+1:]...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("service.GalleryService.DeleteImage: %w", err)
	}
	return nil
}

// Photo returns the viewer projection of the image at index, including the
// wrap-around prev/next indices.
// Returns domain.ErrNotFound for an unknown trip or an out-of-range index,
// which includes every index of an empty gallery.
func (s *GalleryService) Photo(ctx context.Context, tripID string, index int) (domain.Photo, error) {
	t, err := s.c.find(tripID)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("service.GalleryService.Photo: %w", err)
	}
	count := len(t.Images)
	if index < 0 || index >= count {
		return domain.Photo{}, fmt.Errorf("service.GalleryService.Photo: image %d: %w", index, domain.ErrNotFound)
	}
	prev, _ := domain.PrevPhoto(index, count)
	next, _ := domain.NextPhoto(index, count)

	p := domain.Photo{
		Index:   index,
		Count:   count,
		DataURL: t.Images[index],
		Prev:    prev,
		Next:    next,
	}
	// Imported galleries may hold anything; dimensions are best-effort.
	if w, h, err := imaging.Dimensions(p.DataURL); err == nil {
		p.Width, p.Height = w, h
	}
	return p, nil
}
