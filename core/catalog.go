package core

import (
	"math"

	"solarsystem/texture"
)

// Info is the descriptive text shown when a body is focused
type Info struct {
	Name        string `json:"name"`
	Description string `json:"desc"`
	Class       string `json:"type"`
	Diameter    string `json:"diameter"`
	Orbit       string `json:"orbit"`
	Temperature string `json:"temp"`
}

// BodyDef is the static description of one body
type BodyDef struct {
	Name        string           `json:"name"`
	Radius      float64          `json:"radius"`
	Color       string           `json:"color"` // #rrggbb
	Distance    float64          `json:"distance"`
	Speed       float64          `json:"speed"`
	Type        texture.BodyType `json:"surface"`
	FocusOffset float64          `json:"focusOffset"` // Camera distance when focused
	Atmosphere  bool             `json:"atmosphere"`
	Ring        bool             `json:"ring"`
	Info        Info             `json:"info"`
}

// Catalog returns the bodies in scene order, the star first
func Catalog() []BodyDef {
	return []BodyDef{
		{
			Name: "sun", Radius: 10, Color: "#ffaa00", Distance: 0, Speed: 0, Type: texture.Sun, FocusOffset: 40,
			Info: Info{
				Name:        "太陽 (Sun)",
				Description: "太陽系の中心にある恒星。巨大な熱いプラズマの球体であり、中心核での核融合反応によって白熱しています。",
				Class:       "恒星",
				Diameter:    "1,392,700 km",
				Orbit:       "N/A",
				Temperature: "5,505°C",
			},
		},
		{
			Name: "mercury", Radius: 0.8, Color: "#aaaaaa", Distance: 15, Speed: 4.0, Type: texture.Rocky, FocusOffset: 8,
			Info: Info{
				Name:        "水星 (Mercury)",
				Description: "太陽系で最も小さく、太陽に最も近い惑星です。太陽の周りをわずか88日で一周します。",
				Class:       "岩石惑星",
				Diameter:    "4,879 km",
				Orbit:       "88日",
				Temperature: "167°C",
			},
		},
		{
			Name: "venus", Radius: 1.5, Color: "#e3bb76", Distance: 22, Speed: 3.0, Type: texture.Rocky, FocusOffset: 8,
			Atmosphere: true,
			Info: Info{
				Name:        "金星 (Venus)",
				Description: "太陽から2番目の惑星。二酸化炭素を主成分とする非常に厚い大気を持ち、温室効果により高温になっています。",
				Class:       "岩石惑星",
				Diameter:    "12,104 km",
				Orbit:       "225日",
				Temperature: "464°C",
			},
		},
		{
			Name: "earth", Radius: 1.6, Color: "#2233ff", Distance: 32, Speed: 2.5, Type: texture.Rocky, FocusOffset: 8,
			Atmosphere: true,
			Info: Info{
				Name:        "地球 (Earth)",
				Description: "太陽から3番目の惑星であり、生命が存在することが知られている唯一の天体です。表面の約7割は海で覆われています。",
				Class:       "岩石惑星",
				Diameter:    "12,742 km",
				Orbit:       "365.25日",
				Temperature: "15°C",
			},
		},
		{
			Name: "mars", Radius: 1.0, Color: "#ff3300", Distance: 42, Speed: 2.0, Type: texture.Rocky, FocusOffset: 8,
			Info: Info{
				Name:        "火星 (Mars)",
				Description: "太陽から4番目の惑星。「赤い惑星」として知られ、酸化鉄（赤さび）を含む地表が特徴です。",
				Class:       "岩石惑星",
				Diameter:    "6,779 km",
				Orbit:       "687日",
				Temperature: "-65°C",
			},
		},
		{
			Name: "jupiter", Radius: 5.0, Color: "#d8ca9d", Distance: 65, Speed: 1.0, Type: texture.Gas, FocusOffset: 8,
			Info: Info{
				Name:        "木星 (Jupiter)",
				Description: "太陽系最大の惑星。巨大なガス惑星であり、その質量は他のすべての惑星を合わせたものの2.5倍以上あります。",
				Class:       "ガス惑星",
				Diameter:    "139,820 km",
				Orbit:       "12年",
				Temperature: "-110°C",
			},
		},
		{
			Name: "saturn", Radius: 4.0, Color: "#e3e3bd", Distance: 90, Speed: 0.8, Type: texture.Gas, FocusOffset: 15,
			Ring: true,
			Info: Info{
				Name:        "土星 (Saturn)",
				Description: "太陽系で2番目に大きな惑星。美しい環（リング）を持つことで有名で、主に水素とヘリウムで構成されています。",
				Class:       "ガス惑星",
				Diameter:    "116,460 km",
				Orbit:       "29年",
				Temperature: "-140°C",
			},
		},
		{
			Name: "uranus", Radius: 2.5, Color: "#99ffff", Distance: 115, Speed: 0.6, Type: texture.Ice, FocusOffset: 8,
			Info: Info{
				Name:        "天王星 (Uranus)",
				Description: "太陽から7番目の惑星。青緑色に見えるのは大気中のメタンが赤色光を吸収するためです。自転軸が横倒しになっています。",
				Class:       "巨大氷惑星",
				Diameter:    "50,724 km",
				Orbit:       "84年",
				Temperature: "-195°C",
			},
		},
		{
			Name: "neptune", Radius: 2.4, Color: "#3333ff", Distance: 135, Speed: 0.5, Type: texture.Ice, FocusOffset: 8,
			Info: Info{
				Name:        "海王星 (Neptune)",
				Description: "太陽系で最も外側を公転する惑星。鮮やかな青色をしており、非常に強い風が吹いています。",
				Class:       "巨大氷惑星",
				Diameter:    "49,244 km",
				Orbit:       "165年",
				Temperature: "-200°C",
			},
		},
	}
}

// Material holds shading hints for renderers
type Material struct {
	Roughness         float64 `json:"roughness"`
	Metalness         float64 `json:"metalness"`
	Emissive          bool    `json:"emissive"`
	EmissiveIntensity float64 `json:"emissiveIntensity"`
	BumpScale         float64 `json:"bumpScale"` // 0 means no bump map
}

// Material derives the shading hints from the surface type
func (d BodyDef) Material() Material {
	m := Material{Roughness: 0.8, Metalness: 0.1}
	switch d.Type {
	case texture.Gas:
		m.Roughness = 0.4
	case texture.Rocky:
		m.BumpScale = 0.05
	case texture.Sun:
		m.Emissive = true
		m.EmissiveIntensity = 1
	}
	return m
}

// Ring geometry relative to the body radius
const (
	RingInner   = 1.4
	RingOuter   = 2.2
	RingTilt    = math.Pi / 2.5
	RingOpacity = 0.6

	AtmosphereScale   = 1.05
	AtmosphereOpacity = 0.2
)
