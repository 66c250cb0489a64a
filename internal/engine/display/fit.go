package display

import "image"

// Fit returns the largest rectangle with the source aspect ratio that fits a
// winW x winH window, centered, in window coordinates with a top-left
// origin. Whole-number scales are preferred so pixels stay square.
func Fit(winW, winH, srcW, srcH int) image.Rectangle {
	if winW <= 0 || winH <= 0 || srcW <= 0 || srcH <= 0 {
		return image.Rectangle{}
	}

	w, h := srcW, srcH
	if scale := min(winW/srcW, winH/srcH); scale >= 1 {
		w, h = srcW*scale, srcH*scale
	} else if winW*srcH < winH*srcW {
		w, h = winW, winW*srcH/srcW
	} else {
		w, h = winH*srcW/srcH, winH
	}

	x := (winW - w) / 2
	y := (winH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}
