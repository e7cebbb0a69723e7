package query

// Response mirrors the payload returned by the query endpoint. Each section
// is present only when the caller holds the matching read permission.
type Response struct {
	Server   *ServerInfo   `json:"Server,omitempty"`
	Universe *UniverseInfo `json:"Universe,omitempty"`
	Players  *PlayersInfo  `json:"Players,omitempty"`
	Plugins  *PluginsInfo  `json:"Plugins,omitempty"`
}

// ServerInfo describes the running server build.
type ServerInfo struct {
	Name            *string `json:"Name,omitempty"`
	Version         *string `json:"Version,omitempty"`
	Revision        *string `json:"Revision,omitempty"`
	Patchline       *string `json:"Patchline,omitempty"`
	ProtocolVersion *int    `json:"ProtocolVersion,omitempty"`
	ProtocolHash    *string `json:"ProtocolHash,omitempty"`
	MaxPlayers      *int    `json:"MaxPlayers,omitempty"`
}

// UniverseInfo holds world-level counters.
type UniverseInfo struct {
	CurrentPlayers *int    `json:"CurrentPlayers,omitempty"`
	DefaultWorld   *string `json:"DefaultWorld,omitempty"`
}

// PlayersInfo is the ordered player list.
type PlayersInfo struct {
	Entries []PlayerEntry `json:"Entries"`
}

// Count returns the number of listed players.
func (p *PlayersInfo) Count() int {
	if p == nil {
		return 0
	}
	return len(p.Entries)
}

// PlayerEntry is one connected player.
//
// ID is the UUID when present, else the name, else a random value generated
// per decode. IDGenerated marks the last case; such IDs differ on every fetch
// and must not be compared across fetches.
type PlayerEntry struct {
	ID          string  `json:"ID"`
	IDGenerated bool    `json:"IDGenerated,omitempty"`
	Name        *string `json:"Name,omitempty"`
	UUID        *string `json:"UUID,omitempty"`
	World       *string `json:"World,omitempty"`
}

// PluginsInfo is the ordered plugin list.
type PluginsInfo struct {
	Entries []PluginEntry `json:"Entries"`
}

// Count returns the number of listed plugins.
func (p *PluginsInfo) Count() int {
	if p == nil {
		return 0
	}
	return len(p.Entries)
}

// PluginEntry is one installed plugin.
type PluginEntry struct {
	Name    *string `json:"Name,omitempty"`
	Version *string `json:"Version,omitempty"`
	Loaded  *bool   `json:"Loaded,omitempty"`
	Enabled *bool   `json:"Enabled,omitempty"`
	State   *string `json:"State,omitempty"`
}

// Str dereferences an optional string, returning fallback when absent.
func Str(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
