package effects

// Keys of the mask-based compositions. They render through the mask compositor and map to
// the pass-through transform.
const (
	KeyWhiteGlow        = "whiteGlow"
	KeyBlackBackground  = "blackBg"
	KeyWhiteBackground  = "whiteBg"
	KeyBlur             = "blur"
	KeyStaticSilhouette = "static-silhouette"
	KeyEcho             = "echo-visual"
)

// Entry is one selectable effect.
type Entry struct {
	Key    string `json:"key"`
	ID     ID     `json:"id"`
	Masked bool   `json:"masked"`
}

var catalog = []Entry{
	{Key: "none", ID: None},
	{Key: "grayscale", ID: Grayscale},
	{Key: "invert", ID: Invert},
	{Key: "sepia", ID: Sepia},
	{Key: "eco-pink", ID: EcoPink},
	{Key: "weird", ID: Weird},
	{Key: "glow-outline", ID: GlowOutline},
	{Key: "angelical-glitch", ID: AngelicalGlitch},
	{Key: "audio-color-shift", ID: AudioColorShift},
	{Key: "modular-color-shift", ID: ModularColorShift},
	{Key: "kaleidoscope", ID: Kaleidoscope},
	{Key: "mirror", ID: Mirror},
	{Key: "fisheye", ID: Fisheye},
	{Key: "recuerdo", ID: Recuerdo},
	{Key: "glitch2", ID: Glitch2},
	{Key: "vhs", ID: VHS},
	{Key: KeyWhiteGlow, ID: None, Masked: true},
	{Key: KeyBlackBackground, ID: None, Masked: true},
	{Key: KeyWhiteBackground, ID: None, Masked: true},
	{Key: KeyBlur, ID: None, Masked: true},
	{Key: KeyStaticSilhouette, ID: None, Masked: true},
	{Key: KeyEcho, ID: None, Masked: true},
}

var index = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, e := range catalog {
		m[e.Key] = i
	}
	return m
}()

// Catalog returns every selectable effect in display order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the entry for key, or the "none" entry when key is unknown.
func Lookup(key string) Entry {
	e, _ := Find(key)
	return e
}

// Find is Lookup that also reports whether key was known.
func Find(key string) (Entry, bool) {
	i, ok := index[key]
	if !ok {
		return catalog[0], false
	}
	return catalog[i], true
}

// IsMasked reports whether key needs a segmentation mask.
func IsMasked(key string) bool {
	return Lookup(key).Masked
}

// Next returns the key after key in catalog order, wrapping around.
func Next(key string) string {
	return cycle(key, 1)
}

// Prev returns the key before key in catalog order, wrapping around.
func Prev(key string) string {
	return cycle(key, -1)
}

func cycle(key string, d int) string {
	i := index[key]
	n := len(catalog)
	return catalog[((i+d)%n+n)%n].Key
}
