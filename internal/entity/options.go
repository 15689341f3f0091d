package entity

// ConversionOptions is the validated per-request configuration.
// Wire names: quality, keep_png, enhance_filenames.
type ConversionOptions struct {
	Quality          int
	KeepOriginal     bool
	EnhanceFilenames bool
}

// Normalize fills in the default quality and clamps it to [1, 100].
func (o *ConversionOptions) Normalize(defaultQuality int) {
	if o.Quality == 0 {
		o.Quality = defaultQuality
	}
	if o.Quality < 1 {
		o.Quality = 1
	}
	if o.Quality > 100 {
		o.Quality = 100
	}
}
