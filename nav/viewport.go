package nav

// ViewportObserver is the section-visibility capability. The coordinator
// tells it which sections to watch; the observer reports back through
// Coordinator.HandleIntersections whenever visibility changes. A browser
// adapter would wrap IntersectionObserver; tests and the terminal demo use a
// document model.
type ViewportObserver interface {
	// Observe starts watching a page section.
	Observe(sectionID string)

	// Disconnect stops watching everything. The coordinator calls it
	// before re-deriving sections and on Destroy.
	Disconnect()
}

// Intersection reports one observed section's visibility within the
// viewport's activation band.
type Intersection struct {
	SectionID    string
	Ratio        float64 // fraction of the section inside the band
	Intersecting bool
	CenterY      float64 // section center in viewport coordinates
}
