package overlay

import (
	"fmt"
	"image"
	"sync"

	"github.com/skip2/go-qrcode"

	"github.com/ivlev/skyjourney/internal/journey"
)

// Loaded is the progress value at which assets count as loaded.
const Loaded = 100.0

// Panels says which overlay elements are visible.
type Panels struct {
	Loader        bool `json:"loader"`       // spinner while assets load
	LoaderFading  bool `json:"loaderFading"` // loader plays its disappear animation
	Intro         bool `json:"intro"`        // logo and explore button
	Outro         bool `json:"outro"`
	ExploreActive bool `json:"exploreActive"`
}

// Compute maps load progress and journey state to panel visibility.
func Compute(progress float64, st journey.State) Panels {
	loaded := progress >= Loaded
	return Panels{
		Loader:        !loaded,
		LoaderFading:  loaded && st == journey.Idle,
		Intro:         loaded && st == journey.Idle,
		Outro:         st == journey.Ended,
		ExploreActive: loaded && st == journey.Idle,
	}
}

// Overlay tracks load progress and starts the journey from the explore button.
type Overlay struct {
	Logo    string
	Message string // shown on the outro panel

	store *journey.Store
	qr    image.Image

	mu       sync.RWMutex
	progress float64
}

// New creates an overlay for store. A non-empty link is encoded as a QR code
// of qrSize pixels for the outro panel.
func New(store *journey.Store, logo, link string, qrSize int) (*Overlay, error) {
	o := &Overlay{
		Logo:    logo,
		Message: "Thanks for flying with us",
		store:   store,
	}
	if link == "" {
		return o, nil
	}

	code, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr code for %q: %w", link, err)
	}
	code.DisableBorder = true
	o.qr = code.Image(qrSize)
	return o, nil
}

// SetProgress records asset load progress in percent. Safe from any goroutine.
func (o *Overlay) SetProgress(p float64) {
	if p < 0 {
		p = 0
	}
	if p > Loaded {
		p = Loaded
	}
	o.mu.Lock()
	o.progress = p
	o.mu.Unlock()
}

// Progress returns the last recorded progress.
func (o *Overlay) Progress() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.progress
}

// Panels returns the current visibility.
func (o *Overlay) Panels() Panels {
	return Compute(o.Progress(), o.store.State())
}

// Explore presses the explore button. It only begins the journey once assets
// are loaded and reports whether it did.
func (o *Overlay) Explore() bool {
	if !o.Panels().ExploreActive {
		return false
	}
	return o.store.Begin()
}

// QRCode returns the outro QR image or nil.
func (o *Overlay) QRCode() image.Image { return o.qr }
