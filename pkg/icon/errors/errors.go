package errors

import "errors"

var (
	// Source errors 🖼️
	ErrDecode          = errors.New("❌ source bytes are not a decodable image")
	ErrUnsupportedMIME = errors.New("❌ unsupported source media type")

	// Raster errors 🎨
	ErrEncode            = errors.New("❌ canvas could not be encoded")
	ErrInvalidGeometry   = errors.New("❌ target dimensions must be positive")
	ErrInvalidPadding    = errors.New("❌ padding ratio must be in [0, 0.5)")
	ErrInvalidBackground = errors.New("❌ background color is not parseable")
	ErrUnknownFormat     = errors.New("❌ unknown encoding format")

	// Container errors 📦
	ErrEmptyContainer = errors.New("❌ icon container needs at least one image")
	ErrContainerSize  = errors.New("❌ icon container sizes must be in 1..256")
	ErrShortContainer = errors.New("❌ icon container truncated")

	// Pack and plan errors 🗂️
	ErrUnknownPack   = errors.New("❌ unknown pack id")
	ErrUnknownKind   = errors.New("❌ unknown output descriptor kind")
	ErrDuplicatePath = errors.New("❌ duplicate output path")
	ErrNoSelection   = errors.New("❌ no packs selected")

	// Assembly errors 🗜️
	ErrAssembly       = errors.New("❌ archive assembly failed")
	ErrMissingBytes   = errors.New("❌ archive entry has no data")
	ErrUnknownArchive = errors.New("❌ unknown archive format")

	// Fetch errors 🔒
	ErrBlockedAddress = errors.New("❌ resolved address is not allowed")
	ErrFetchFailed    = errors.New("❌ remote fetch failed")
)
