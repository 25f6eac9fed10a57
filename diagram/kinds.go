package diagram

// Kind is the closed set of components that can be placed on the board.
type Kind string

const (
	Client        Kind = "client"
	Service       Kind = "service"
	Database      Kind = "database"
	LoadBalancer  Kind = "loadBalancer"
	Cache         Kind = "cache"
	Queue         Kind = "queue"
	CDN           Kind = "cdn"
	Proxy         Kind = "proxy"
	APIGateway    Kind = "apiGateway"
	ObjectStorage Kind = "objectStorage"
	Consumers     Kind = "consumers"
	WAF           Kind = "waf"
)

// KindInfo is everything the node template needs to draw a kind.
type KindInfo struct {
	Kind        Kind   `json:"kind"`
	DisplayName string `json:"displayName"`
	Subtitle    string `json:"subtitle"`
	// Icon holds SVG elements drawn in a 24x24 stroked viewbox.
	Icon []string `json:"icon"`
}

var palette = []KindInfo{
	{Client, "Client", "Client", []string{
		`<path d="M3 12a3 3 0 0 0 3-3V6a3 3 0 0 1 3-3h6a3 3 0 0 1 3 3v3a3 3 0 0 0 3 3" />`,
		`<path d="M9 18h6" />`,
		`<path d="M12 12v6" />`,
	}},
	{Service, "Service", "Service", []string{
		`<rect width="20" height="8" x="2" y="2" rx="2" ry="2" />`,
		`<rect width="20" height="8" x="2" y="14" rx="2" ry="2" />`,
		`<line x1="6" x2="6.01" y1="6" y2="6" />`,
		`<line x1="6" x2="6.01" y1="18" y2="18" />`,
	}},
	{Database, "Database", "Database", []string{
		`<ellipse cx="12" cy="5" rx="9" ry="3" />`,
		`<path d="M3 5V19A9 3 0 0 0 21 19V5" />`,
		`<path d="M3 12A9 3 0 0 0 21 12" />`,
	}},
	{LoadBalancer, "Load Balancer", "Load Balancer", []string{
		`<path d="M4 12h16" />`,
		`<path d="M12 4v16" />`,
		`<path d="m8 8-4 4 4 4" />`,
		`<path d="m16 8 4 4-4 4" />`,
		`<path d="m8 16 4 4 4-4" />`,
		`<path d="m8 8 4-4 4 4" />`,
	}},
	{Cache, "Cache", "Cache", []string{
		`<polygon points="13 2 3 14 12 14 11 22 21 10 12 10 13 2" />`,
	}},
	{Queue, "Queue", "Queue", []string{
		`<path d="M3 7h18" />`,
		`<path d="M3 11h18" />`,
		`<path d="M3 15h18" />`,
		`<path d="M3 19h18" />`,
	}},
	{CDN, "CDN", "CDN", []string{
		`<circle cx="12" cy="12" r="10" />`,
		`<path d="M12 2a14.5 14.5 0 0 0 0 20 14.5 14.5 0 0 0 0-20" />`,
		`<path d="M2 12h20" />`,
	}},
	{Proxy, "Proxy", "Proxy", []string{
		`<path d="M8 3 4 7l4 4" />`,
		`<path d="M4 7h16" />`,
		`<path d="m16 21 4-4-4-4" />`,
		`<path d="M20 17H4" />`,
	}},
	{APIGateway, "API Gateway", "API Gateway", []string{
		`<rect x="16" y="16" width="6" height="6" rx="1" />`,
		`<rect x="2" y="16" width="6" height="6" rx="1" />`,
		`<rect x="9" y="2" width="6" height="6" rx="1" />`,
		`<path d="M5 16v-3a1 1 0 0 1 1-1h12a1 1 0 0 1 1 1v3" />`,
		`<path d="M12 12V8" />`,
	}},
	{ObjectStorage, "Object Storage", "Object Storage", []string{
		`<path d="M3 14h3a2 2 0 0 1 2 2v3a2 2 0 0 1-2 2H3a2 2 0 0 1-2-2v-3a2 2 0 0 1 2-2z" />`,
		`<path d="M10 14h3a2 2 0 0 1 2 2v3a2 2 0 0 1-2 2h-3a2 2 0 0 1-2-2v-3a2 2 0 0 1 2-2z" />`,
		`<path d="M17 14h3a2 2 0 0 1 2 2v3a2 2 0 0 1-2 2h-3a2 2 0 0 1-2-2v-3a2 2 0 0 1 2-2z" />`,
		`<path d="M3 3h3a2 2 0 0 1 2 2v3a2 2 0 0 1-2 2H3a2 2 0 0 1-2-2V5a2 2 0 0 1 2-2z" />`,
		`<path d="M10 3h3a2 2 0 0 1 2 2v3a2 2 0 0 1-2 2h-3a2 2 0 0 1-2-2V5a2 2 0 0 1 2-2z" />`,
		`<path d="M17 3h3a2 2 0 0 1 2 2v3a2 2 0 0 1-2 2h-3a2 2 0 0 1-2-2V5a2 2 0 0 1 2-2z" />`,
	}},
	{Consumers, "Consumers", "Consumers", []string{
		`<path d="M16 21v-2a4 4 0 0 0-4-4H6a4 4 0 0 0-4 4v2" />`,
		`<circle cx="9" cy="7" r="4" />`,
		`<path d="M22 21v-2a4 4 0 0 0-3-3.87" />`,
		`<path d="M16 3.13a4 4 0 0 1 0 7.75" />`,
	}},
	{WAF, "WAF", "WAF", []string{
		`<path d="M12 22s8-4 8-10V5l-8-3-8 3v7c0 6 8 10 8 10" />`,
		`<path d="m9 12 2 2 4-4" />`,
	}},
}

var kindIndex = func() map[Kind]int {
	out := make(map[Kind]int, len(palette))
	for i, info := range palette {
		out[info.Kind] = i
	}
	return out
}()

// Palette returns a copy of the registry entries in palette order.
func Palette() []KindInfo {
	out := make([]KindInfo, len(palette))
	for i, info := range palette {
		info.Icon = append([]string(nil), info.Icon...)
		out[i] = info
	}
	return out
}

// ParseKind resolves a palette drag payload to a kind.
func ParseKind(s string) (Kind, bool) {
	_, ok := kindIndex[Kind(s)]
	return Kind(s), ok
}

func (k Kind) Valid() bool {
	_, ok := kindIndex[k]
	return ok
}

// Info returns the registry entry of a kind. Unknown kinds get a generic
// "Node" entry with no icon.
func (k Kind) Info() KindInfo {
	if i, ok := kindIndex[k]; ok {
		return palette[i]
	}
	return KindInfo{Kind: k, DisplayName: "Node", Subtitle: "Node"}
}

func (k Kind) DisplayName() string { return k.Info().DisplayName }
