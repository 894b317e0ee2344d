package compose

// anchorPosition maps a named anchor to the top-left pixel position for
// a text block of (textW, textH) on a (canvasW, canvasH) canvas.
// Unrecognized anchor names fall back to bottom_right; this is the one
// place that default lives.
func anchorPosition(anchor string, canvasW, canvasH, textW, textH, marginX, marginY int) (x int, y int) {
	switch anchor {
	case "top_left":
		return marginX, marginY
	case "top_center":
		return (canvasW - textW) / 2, marginY
	case "top_right":
		return canvasW - textW - marginX, marginY
	case "center_left":
		return marginX, (canvasH - textH) / 2
	case "center":
		return (canvasW - textW) / 2, (canvasH - textH) / 2
	case "center_right":
		return canvasW - textW - marginX, (canvasH - textH) / 2
	case "bottom_left":
		return marginX, canvasH - textH - marginY
	case "bottom_center":
		return (canvasW - textW) / 2, canvasH - textH - marginY
	default: // bottom_right and anything unrecognized
		return canvasW - textW - marginX, canvasH - textH - marginY
	}
}
