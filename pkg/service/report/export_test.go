package report

// RenderWithPageCount is exported for testing
func RenderWithPageCount(doc *Document) ([]byte, int, error) {
	return render(doc)
}
