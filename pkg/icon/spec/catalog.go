package spec

import (
	"fmt"

	icnerrors "github.com/iconsmith/iconsmith/pkg/icon/errors"
)

// Registry maps pack ids to their immutable specifications. Packs are
// registered at init time and never mutated afterwards.
var Registry = make(map[string]*Pack)

// registryOrder preserves declaration order; the export plan and the
// `packs` listing both follow it.
var registryOrder []string

// Register adds a pack to the catalog. It panics on invalid packs or id
// collisions since the catalog is static program data.
func Register(p *Pack) {
	if _, dup := Registry[p.ID]; dup {
		panic(fmt.Sprintf("pack %s registered twice", p.ID))
	}
	if err := p.Validate(); err != nil {
		panic(err)
	}
	Registry[p.ID] = p
	registryOrder = append(registryOrder, p.ID)
}

// Get retrieves a pack by id.
func Get(id string) (*Pack, error) {
	p, ok := Registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", icnerrors.ErrUnknownPack, id)
	}
	return p, nil
}

// IDs returns all pack ids in declaration order.
func IDs() []string {
	out := make([]string, len(registryOrder))
	copy(out, registryOrder)
	return out
}

const webManifest = `{
  "name": "",
  "short_name": "",
  "icons": [
    { "src": "/android-chrome-192x192.png", "sizes": "192x192", "type": "image/png" },
    { "src": "/android-chrome-512x512.png", "sizes": "512x512", "type": "image/png" }
  ],
  "theme_color": "#ffffff",
  "background_color": "#ffffff",
  "display": "standalone"
}
`

const browserConfig = `<?xml version="1.0" encoding="utf-8"?>
<browserconfig>
  <msapplication>
    <tile>
      <square150x150logo src="/mstile-150x150.png"/>
      <TileColor>#ffffff</TileColor>
    </tile>
  </msapplication>
</browserconfig>
`

func init() {
	Register(&Pack{
		ID:          "favicon",
		Name:        "Website favicon",
		Description: "Classic favicon.ico plus the modern PNG and manifest companions",
		Outputs: []Output{
			IconContainer{Path: "favicon.ico", Sizes: []int{16, 32, 48}},
			Raster{Path: "favicon-16x16.png", Width: 16, Height: 16},
			Raster{Path: "favicon-32x32.png", Width: 32, Height: 32},
			Raster{Path: "apple-touch-icon.png", Width: 180, Height: 180,
				Place: Override{Padding: Pad(0.05), Background: MustBackground("#ffffff")}},
			Raster{Path: "android-chrome-192x192.png", Width: 192, Height: 192},
			Raster{Path: "android-chrome-512x512.png", Width: 512, Height: 512},
			Raster{Path: "mstile-150x150.png", Width: 150, Height: 150, Place: Override{Padding: Pad(0.15)}},
			StaticText{Path: "site.webmanifest", Content: webManifest},
			StaticText{Path: "browserconfig.xml", Content: browserConfig},
		},
	})

	Register(&Pack{
		ID:          "pwa",
		Name:        "Progressive web app icons",
		Description: "Standard and maskable launcher icons",
		Outputs: []Output{
			Raster{Path: "icons/icon-192.png", Width: 192, Height: 192},
			Raster{Path: "icons/icon-512.png", Width: 512, Height: 512},
			// Maskable icons keep the subject inside the safe zone.
			Raster{Path: "icons/maskable-192.png", Width: 192, Height: 192,
				Place: Override{Padding: Pad(0.1), Background: MustBackground("#ffffff")}},
			Raster{Path: "icons/maskable-512.png", Width: 512, Height: 512,
				Place: Override{Padding: Pad(0.1), Background: MustBackground("#ffffff")}},
		},
	})

	Register(&Pack{
		ID:          "chrome-extension",
		Name:        "Chrome extension icons",
		Description: "Toolbar and management-page icon sizes",
		Outputs: []Output{
			Raster{Path: "icons/icon16.png", Width: 16, Height: 16},
			Raster{Path: "icons/icon32.png", Width: 32, Height: 32},
			Raster{Path: "icons/icon48.png", Width: 48, Height: 48},
			Raster{Path: "icons/icon128.png", Width: 128, Height: 128},
		},
	})

	Register(&Pack{
		ID:          "firefox-extension",
		Name:        "Firefox extension icons",
		Description: "Sizes referenced from manifest.json icons",
		Outputs: []Output{
			Raster{Path: "icons/icon-48.png", Width: 48, Height: 48},
			Raster{Path: "icons/icon-96.png", Width: 96, Height: 96},
		},
	})

	Register(&Pack{
		ID:          "slack-emoji",
		Name:        "Slack emoji",
		Description: "Square emoji within Slack's 128 KB upload limit",
		Outputs: []Output{
			Raster{Path: "emoji.png", Width: 128, Height: 128, WarnOverBytes: 128 * 1024},
		},
	})

	Register(&Pack{
		ID:          "windows-ico",
		Name:        "Windows application icon",
		Description: "Multi-resolution .ico for desktop applications",
		Outputs: []Output{
			IconContainer{Path: "app.ico", Sizes: []int{16, 24, 32, 48, 64, 128, 256}},
		},
	})

	Register(&Pack{
		ID:          "macos-appicon",
		Name:        "macOS app icon set",
		Description: "AppIcon.iconset PNGs ready for iconutil",
		Outputs: []Output{
			Raster{Path: "AppIcon.iconset/icon_16x16.png", Width: 16, Height: 16},
			Raster{Path: "AppIcon.iconset/icon_16x16@2x.png", Width: 32, Height: 32},
			Raster{Path: "AppIcon.iconset/icon_32x32.png", Width: 32, Height: 32},
			Raster{Path: "AppIcon.iconset/icon_32x32@2x.png", Width: 64, Height: 64},
			Raster{Path: "AppIcon.iconset/icon_128x128.png", Width: 128, Height: 128},
			Raster{Path: "AppIcon.iconset/icon_128x128@2x.png", Width: 256, Height: 256},
			Raster{Path: "AppIcon.iconset/icon_256x256.png", Width: 256, Height: 256},
			Raster{Path: "AppIcon.iconset/icon_256x256@2x.png", Width: 512, Height: 512},
			Raster{Path: "AppIcon.iconset/icon_512x512.png", Width: 512, Height: 512},
			Raster{Path: "AppIcon.iconset/icon_512x512@2x.png", Width: 1024, Height: 1024},
		},
	})

	Register(&Pack{
		ID:          "social-preview",
		Name:        "Social preview images",
		Description: "Open Graph and Twitter card images",
		Outputs: []Output{
			Raster{Path: "og-image.jpg", Width: 1200, Height: 630, Format: FormatJPEG,
				Place:         Override{Padding: Pad(0.1), Background: MustBackground("#ffffff")},
				WarnOverBytes: 1024 * 1024},
			Raster{Path: "twitter-card.jpg", Width: 1200, Height: 600, Format: FormatJPEG,
				Place:         Override{Padding: Pad(0.1), Background: MustBackground("#ffffff")},
				WarnOverBytes: 1024 * 1024},
		},
	})

	Register(&Pack{
		ID:          "android",
		Name:        "Android launcher icons",
		Description: "Launcher mipmaps per density plus the Play Store listing icon",
		Outputs: []Output{
			Raster{Path: "mipmap-mdpi/ic_launcher.png", Width: 48, Height: 48},
			Raster{Path: "mipmap-hdpi/ic_launcher.png", Width: 72, Height: 72},
			Raster{Path: "mipmap-xhdpi/ic_launcher.png", Width: 96, Height: 96},
			Raster{Path: "mipmap-xxhdpi/ic_launcher.png", Width: 144, Height: 144},
			Raster{Path: "mipmap-xxxhdpi/ic_launcher.png", Width: 192, Height: 192},
			Raster{Path: "playstore-icon.png", Width: 512, Height: 512},
		},
	})

	Register(&Pack{
		ID:          "ios",
		Name:        "iOS app icons",
		Description: "AppIcon PNGs for iPhone, iPad and the App Store",
		Outputs: []Output{
			// App Store review rejects icons with an alpha channel, so
			// every size gets an opaque fill.
			Raster{Path: "AppIcon/Icon-40.png", Width: 40, Height: 40,
				Place: Override{Background: MustBackground("#ffffff")}},
			Raster{Path: "AppIcon/Icon-58.png", Width: 58, Height: 58,
				Place: Override{Background: MustBackground("#ffffff")}},
			Raster{Path: "AppIcon/Icon-60.png", Width: 60, Height: 60,
				Place: Override{Background: MustBackground("#ffffff")}},
			Raster{Path: "AppIcon/Icon-76.png", Width: 76, Height: 76,
				Place: Override{Background: MustBackground("#ffffff")}},
			Raster{Path: "AppIcon/Icon-80.png", Width: 80, Height: 80,
				Place: Override{Background: MustBackground("#ffffff")}},
			Raster{Path: "AppIcon/Icon-87.png", Width: 87, Height: 87,
				Place: Override{Background: MustBackground("#ffffff")}},
			Raster{Path: "AppIcon/Icon-120.png", Width: 120, Height: 120,
				Place: Override{Background: MustBackground("#ffffff")}},
			Raster{Path: "AppIcon/Icon-152.png", Width: 152, Height: 152,
				Place: Override{Background: MustBackground("#ffffff")}},
			Raster{Path: "AppIcon/Icon-167.png", Width: 167, Height: 167,
				Place: Override{Background: MustBackground("#ffffff")}},
			Raster{Path: "AppIcon/Icon-180.png", Width: 180, Height: 180,
				Place: Override{Background: MustBackground("#ffffff")}},
			Raster{Path: "AppIcon/Icon-1024.png", Width: 1024, Height: 1024,
				Place: Override{Background: MustBackground("#ffffff")}},
		},
	})
}
