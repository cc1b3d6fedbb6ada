package sketch

import (
	"context"
	"fmt"
	"image"
	"io"

	// Decoders for the formats PlaceImage accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/sketch/geom"
)

// ImageJob is the eventual result of PlaceImage.
//
// Done is closed once the job's queued operation has run on the board's
// goroutine, successfully or not. Err and Image are valid after that.
type ImageJob struct {
	done   chan struct{}
	err    error
	placed geom.Image
	format string
}

func newImageJob() *ImageJob {
	return &ImageJob{done: make(chan struct{})}
}

// Done returns a channel that is closed when the job has been applied.
func (j *ImageJob) Done() <-chan struct{} { return j.done }

// Err returns why the image was not placed, or nil.
func (j *ImageJob) Err() error {
	select {
	case <-j.done:
		return j.err
	default:
		return nil
	}
}

// Image returns the placed entity and whether placement succeeded.
func (j *ImageJob) Image() (geom.Image, bool) {
	select {
	case <-j.done:
		return j.placed, j.err == nil
	default:
		return geom.Image{}, false
	}
}

// Format returns the name of the decoder that read the data, or "" if
// decoding failed or has not finished.
func (j *ImageJob) Format() string {
	select {
	case <-j.done:
		return j.format
	default:
		return ""
	}
}

func (j *ImageJob) finish(err error) {
	j.err = err
	close(j.done)
}

// PlaceImage decodes r in the background and, once the result is pumped,
// places the image centered on the surface, shrunk to fit within the
// configured fraction of it. The placement is one undoable edit.
//
// The board stays in ModePlacingImage, ignoring pointer presses, until every
// pending job has been applied. A gesture in progress is finalized first and
// a pending text position is dropped.
//
// Decode failures never touch the scene; they are reported by the job.
func (b *Board) PlaceImage(ctx context.Context, r io.Reader) *ImageJob {
	job := newImageJob()
	if b.closed {
		job.finish(ErrClosed)
		return job
	}
	b.finishGesture()
	if b.mode == ModePlacingText {
		b.setMode(ModeIdle)
	}
	b.setMode(ModePlacingImage)
	b.pending++
	b.flush()

	go func() {
		src, format, err := decodeImage(ctx, r)
		b.queue.post(func() { b.applyImage(job, src, format, err) })
	}()
	return job
}

// decodeImage runs on a decode goroutine.
func decodeImage(ctx context.Context, r io.Reader) (image.Image, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if b := src.Bounds(); b.Empty() {
		return nil, format, ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return src, format, nil
}

// applyImage runs on the board goroutine from Pump.
func (b *Board) applyImage(job *ImageJob, src image.Image, format string, err error) {
	b.pending--
	if b.pending <= 0 {
		b.pending = 0
		if b.mode == ModePlacingImage {
			b.setMode(ModeIdle)
		}
	}
	job.format = format

	if b.closed {
		job.finish(ErrClosed)
		return
	}
	if err != nil {
		b.logger.Warn("sketch: image not placed", "err", err)
		job.finish(err)
		return
	}

	w, h := b.store.Size()
	x, y, dw, dh := fitCentered(src.Bounds(), w, h, b.cfg.Image.FitRatio)
	img, ok := b.store.CommitImage(src, x, y, dw, dh)
	if !ok {
		job.finish(ErrEmptyImage)
		return
	}
	b.flush()
	b.logger.Info("sketch: image placed", "id", img.ID, "format", format, "width", dw, "height", dh)
	job.placed = img
	job.finish(nil)
}

// fitCentered shrinks bounds uniformly to fit within ratio of the surface
// and centers the result. Images that already fit keep their natural size.
func fitCentered(bounds image.Rectangle, surfaceW, surfaceH int, ratio float64) (x, y, w, h float64) {
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	sw, sh := float64(surfaceW), float64(surfaceH)
	scale := min(1, min(sw/iw, sh/ih)*ratio)
	w, h = iw*scale, ih*scale
	return (sw - w) / 2, (sh - h) / 2, w, h
}

// Wake returns a channel that receives a value whenever operations are
// queued for Pump. Hosts running their own event loop select on it.
func (b *Board) Wake() <-chan struct{} { return b.queue.wake }

// Pending returns the number of image jobs not yet applied.
func (b *Board) Pending() int { return b.pending }

// Pump runs every queued operation on the calling goroutine, in arrival
// order, and returns how many ran. On a closed board the operations still
// run; image jobs then finish with ErrClosed.
func (b *Board) Pump() int {
	n := 0
	for _, op := range b.queue.take() {
		op()
		n++
	}
	return n
}

// Await pumps until job is done or ctx ends.
func (b *Board) Await(ctx context.Context, job *ImageJob) error {
	for {
		b.Pump()
		select {
		case <-job.Done():
			return job.Err()
		default:
		}
		select {
		case <-job.Done():
			return job.Err()
		case <-b.queue.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
