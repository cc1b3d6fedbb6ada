// Package raster paints a scene onto a pixel surface.
//
// Rendering goes through gg's software renderer: strokes use round caps and
// joins, shapes are outlined, labels are filled with a fixed face anchored at
// their left baseline, and placed images are scaled to their stored box.
// Repainting is always a full replay from the background up, never an
// incremental update of the previous frame.
//
// Usage:
//
//	r, err := raster.New(800, 600)
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	img := r.Paint(store.Scene(), registry)
package raster
