package entities

// Site is the static content of the portfolio, consumed by reference.
type Site struct {
	Name       string          `toml:"name"`
	Role       string          `toml:"role"`
	Tagline    LocalizedText   `toml:"tagline"`
	Status     Status          `toml:"status"`
	Contact    Contact         `toml:"contact"`
	Bio        []LocalizedText `toml:"bio"`
	Images     Images          `toml:"images"`
	Headline   []string        `toml:"headline"`
	Stats      Stats           `toml:"stats"`
	Projects   []Project       `toml:"projects"`
	Pads       []SoundPad      `toml:"pads"`
	Categories []string        `toml:"categories"`
}

type Status struct {
	Label string `toml:"label"`
	Value string `toml:"value"`
	Color string `toml:"color"` // green, red or yellow
}

type Contact struct {
	Email    string `toml:"email"`
	LinkedIn string `toml:"linkedin"`
	Resume   string `toml:"resume"`
}

type Images struct {
	Bio  string `toml:"bio"`
	Logo string `toml:"logo"`
}

type Stats struct {
	CPULoad  string `toml:"cpu_load"`
	Latency  string `toml:"latency"`
	Projects string `toml:"projects"`
}

type Project struct {
	ID          string   `toml:"id"`
	Title       string   `toml:"title"`
	Category    string   `toml:"category"`
	Description string   `toml:"description"`
	Tags        []string `toml:"tags"`
	ImageURL    string   `toml:"image_url"`
	VideoURL    string   `toml:"video_url"` // YouTube, Vimeo, MP4 or Drive link
	AudioSpec   string   `toml:"audio_spec"`
	Featured    bool     `toml:"featured"`
}

// SoundPad is one trigger on the sound lab grid.
type SoundPad struct {
	ID       string `toml:"id"`
	Label    string `toml:"label"`
	Key      string `toml:"key"`
	Color    string `toml:"color"` // primary or secondary
	Icon     string `toml:"icon"`
	AudioSrc string `toml:"audio_src"`
}

// Pad returns the pad with the given id.
func (s *Site) Pad(id string) (SoundPad, bool) {
	for _, p := range s.Pads {
		if p.ID == id {
			return p, true
		}
	}
	return SoundPad{}, false
}
