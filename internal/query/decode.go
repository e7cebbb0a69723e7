package query

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// Top-level section keys.
const (
	keyServer   = "Server"
	keyUniverse = "Universe"
	keyPlayers  = "Players"
	keyPlugins  = "Plugins"
)

// Wrapper keys under which a section's array may be nested, in priority order.
var (
	playerWrapperKeys = []string{"Players", "Entries", "List", "Data"}
	pluginWrapperKeys = []string{"Plugins", "Entries", "List", "Data"}
	pluginDetailKeys  = []string{"Version", "Loaded", "Enabled", "State"}
)

type object map[string]json.RawMessage

// playerShape and pluginShape try one known representation of a section.
// The first shape that matches wins.
type (
	playerShape func(raw json.RawMessage) ([]PlayerEntry, bool)
	pluginShape func(raw json.RawMessage) ([]PluginEntry, bool)
)

var (
	playerShapes = []playerShape{playersFromArray, playersFromWrapper}
	pluginShapes = []pluginShape{pluginsFromArray, pluginsFromWrapper, pluginsFromWrappedMapping, pluginsFromMapping}
)

// Decode parses canonical JSON text into a Response. Only invalid JSON syntax
// or a non-object top level is an error; missing sections stay nil and
// mistyped fields are treated as absent.
func Decode(text string) (*Response, error) {
	data := []byte(text)
	var probe json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &DecodeError{Kind: DecodeMalformed, Err: err}
	}
	doc, ok := asObject(probe)
	if !ok {
		return nil, &DecodeError{Kind: DecodeNotObject}
	}

	resp := &Response{}
	if raw, ok := field(doc, keyServer); ok {
		if obj, ok := asObject(raw); ok {
			resp.Server = decodeServer(obj)
		}
	}
	if raw, ok := field(doc, keyUniverse); ok {
		if obj, ok := asObject(raw); ok {
			resp.Universe = &UniverseInfo{
				CurrentPlayers: optInt(obj, "CurrentPlayers"),
				DefaultWorld:   optString(obj, "DefaultWorld"),
			}
		}
	}
	if raw, ok := field(doc, keyPlayers); ok {
		resp.Players = &PlayersInfo{Entries: decodePlayers(raw)}
	}
	if raw, ok := field(doc, keyPlugins); ok {
		resp.Plugins = &PluginsInfo{Entries: decodePlugins(raw)}
	} else if entries, ok := bareMappingDocument(doc); ok {
		resp.Plugins = &PluginsInfo{Entries: entries}
	}
	return resp, nil
}

func decodeServer(obj object) *ServerInfo {
	return &ServerInfo{
		Name:            optString(obj, "Name"),
		Version:         optString(obj, "Version"),
		Revision:        optString(obj, "Revision"),
		Patchline:       optString(obj, "Patchline"),
		ProtocolVersion: optInt(obj, "ProtocolVersion"),
		ProtocolHash:    optString(obj, "ProtocolHash"),
		MaxPlayers:      optInt(obj, "MaxPlayers"),
	}
}

func decodePlayers(raw json.RawMessage) []PlayerEntry {
	for _, shape := range playerShapes {
		if entries, ok := shape(raw); ok {
			return entries
		}
	}
	return []PlayerEntry{}
}

func playersFromArray(raw json.RawMessage) ([]PlayerEntry, bool) {
	records, ok := asObjectArray(raw)
	if !ok {
		return nil, false
	}
	entries := make([]PlayerEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, playerFromObject(rec))
	}
	return entries, true
}

func playersFromWrapper(raw json.RawMessage) ([]PlayerEntry, bool) {
	obj, ok := asObject(raw)
	if !ok {
		return nil, false
	}
	for _, key := range playerWrapperKeys {
		if inner, ok := field(obj, key); ok {
			if entries, ok := playersFromArray(inner); ok {
				return entries, true
			}
		}
	}
	return nil, false
}

func playerFromObject(obj object) PlayerEntry {
	entry := PlayerEntry{
		Name:  optString(obj, "Name"),
		UUID:  optString(obj, "UUID"),
		World: optString(obj, "World"),
	}
	switch {
	case entry.UUID != nil && *entry.UUID != "":
		entry.ID = *entry.UUID
	case entry.Name != nil && *entry.Name != "":
		entry.ID = *entry.Name
	default:
		entry.ID = uuid.NewString()
		entry.IDGenerated = true
	}
	return entry
}

func decodePlugins(raw json.RawMessage) []PluginEntry {
	for _, shape := range pluginShapes {
		if entries, ok := shape(raw); ok {
			return entries
		}
	}
	return []PluginEntry{}
}

func pluginsFromArray(raw json.RawMessage) ([]PluginEntry, bool) {
	records, ok := asObjectArray(raw)
	if !ok {
		return nil, false
	}
	entries := make([]PluginEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, PluginEntry{
			Name:    optString(rec, "Name"),
			Version: optString(rec, "Version"),
			Loaded:  optBool(rec, "Loaded"),
			Enabled: optBool(rec, "Enabled"),
			State:   optString(rec, "State"),
		})
	}
	return entries, true
}

func pluginsFromWrapper(raw json.RawMessage) ([]PluginEntry, bool) {
	obj, ok := asObject(raw)
	if !ok {
		return nil, false
	}
	for _, key := range pluginWrapperKeys {
		if inner, ok := field(obj, key); ok {
			if entries, ok := pluginsFromArray(inner); ok {
				return entries, true
			}
		}
	}
	return nil, false
}

func pluginsFromWrappedMapping(raw json.RawMessage) ([]PluginEntry, bool) {
	obj, ok := asObject(raw)
	if !ok {
		return nil, false
	}
	for _, key := range pluginWrapperKeys {
		if inner, ok := field(obj, key); ok {
			if entries, ok := pluginsFromMapping(inner); ok {
				return entries, true
			}
		}
	}
	return nil, false
}

// pluginsFromMapping reads {"<name>": {details}, ...}. Every value must be an
// object. Entries are sorted by name.
func pluginsFromMapping(raw json.RawMessage) ([]PluginEntry, bool) {
	obj, ok := asObject(raw)
	if !ok {
		return nil, false
	}
	entries := make([]PluginEntry, 0, len(obj))
	for name, value := range obj {
		details, ok := asObject(value)
		if !ok {
			return nil, false
		}
		entries = append(entries, PluginEntry{
			Name:    &name,
			Version: optString(details, "Version"),
			Loaded:  optBool(details, "Loaded"),
			Enabled: optBool(details, "Enabled"),
			State:   optString(details, "State"),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return *entries[i].Name < *entries[j].Name })
	return entries, true
}

// bareMappingDocument treats the whole document as a plugin mapping when it
// carries no known section key and every value looks like plugin details.
func bareMappingDocument(doc object) ([]PluginEntry, bool) {
	if len(doc) == 0 {
		return nil, false
	}
	for _, key := range []string{keyServer, keyUniverse, keyPlayers, keyPlugins} {
		if _, ok := doc[key]; ok {
			return nil, false
		}
	}
	for _, value := range doc {
		details, ok := asObject(value)
		if !ok || !hasAnyKey(details, pluginDetailKeys) {
			return nil, false
		}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, false
	}
	return pluginsFromMapping(raw)
}

func hasAnyKey(obj object, keys []string) bool {
	for _, key := range keys {
		if _, ok := obj[key]; ok {
			return true
		}
	}
	return false
}

// field returns obj[key] unless it is missing or JSON null.
func field(obj object, key string) (json.RawMessage, bool) {
	raw, ok := obj[key]
	if !ok {
		return nil, false
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false
	}
	return trimmed, true
}

func asObject(raw json.RawMessage) (object, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj object
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func asObjectArray(raw json.RawMessage) ([]object, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, false
	}
	records := make([]object, 0, len(items))
	for _, item := range items {
		rec, ok := asObject(item)
		if !ok {
			return nil, false
		}
		records = append(records, rec)
	}
	return records, true
}

func optString(obj object, key string) *string {
	raw, ok := field(obj, key)
	if !ok || raw[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// optInt accepts integer JSON numbers only; 1.5, 1e3 and "1" are absent.
func optInt(obj object, key string) *int {
	raw, ok := field(obj, key)
	if !ok || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return nil
	}
	n, err := strconv.ParseInt(string(raw), 10, strconv.IntSize)
	if err != nil {
		return nil
	}
	v := int(n)
	return &v
}

func optBool(obj object, key string) *bool {
	raw, ok := field(obj, key)
	if !ok {
		return nil
	}
	var b bool
	switch string(raw) {
	case "true":
		b = true
	case "false":
		b = false
	default:
		return nil
	}
	return &b
}
