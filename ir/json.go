package ir

import (
	"bytes"
	"encoding/json"
	"sort"
)

// jsonObjectBuilder assembles a JSON object with caller-controlled key
// order. encoding/json already emits struct fields in declaration
// order, which is deterministic; the one place that isn't true is a Go
// map, whose iteration order is intentionally randomized. This builder
// is used only by the map-valued IR types (LlmConfig.RateLimits,
// Scenario start routes and fixtures, FixtureRow.Values,
// Signal.Aggregate) so
// canonical JSON stays deterministic everywhere, not just for plain
// structs.
type jsonObjectBuilder struct {
	buf bytes.Buffer
}

func newJSONObjectBuilder() *jsonObjectBuilder {
	b := &jsonObjectBuilder{}
	b.buf.WriteByte('{')
	return b
}

func (b *jsonObjectBuilder) field(name string, value any) {
	if b.buf.Len() > 1 {
		b.buf.WriteByte(',')
	}
	key, _ := json.Marshal(name)
	b.buf.Write(key)
	b.buf.WriteByte(':')
	v, err := json.Marshal(value)
	if err != nil {
		v = []byte("null")
	}
	b.buf.Write(v)
}

func (b *jsonObjectBuilder) bytes() []byte {
	b.buf.WriteByte('}')
	return b.buf.Bytes()
}

// sortedKeys returns the keys of a map[string]T in ascending order.
func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON gives LlmConfig.RateLimits-style maps a deterministic
// key order.
func (c *LlmConfig) MarshalJSON() ([]byte, error) {
	b := newJSONObjectBuilder()
	b.field("loc", c.Loc)
	b.field("default_model", c.DefaultModel)
	b.field("artifact_store", c.ArtifactStore)
	b.field("log_prompts", c.LogPrompts)
	b.field("log_responses", c.LogResponses)

	rateLimits := make([]rateLimitEntry, 0, len(c.RateLimits))
	for _, k := range sortedKeys(c.RateLimits) {
		rateLimits = append(rateLimits, rateLimitEntry{Model: k, RPM: c.RateLimits[k]})
	}
	b.field("rate_limits", rateLimits)
	return b.bytes(), nil
}

type rateLimitEntry struct {
	Model string `json:"model"`
	RPM   int    `json:"rpm"`
}

// MarshalJSON gives Scenario's fixture map a deterministic entity-name
// key order.
func (s *Scenario) MarshalJSON() ([]byte, error) {
	b := newJSONObjectBuilder()
	b.field("loc", s.Loc)
	b.field("name", s.Name)

	routes := make([]startRouteEntry, 0, len(s.StartRoutes))
	for _, k := range sortedKeys(s.StartRoutes) {
		routes = append(routes, startRouteEntry{Persona: k, Route: s.StartRoutes[k]})
	}
	b.field("start_routes", routes)

	fixtures := make([]fixtureEntry, 0, len(s.Fixtures))
	for _, k := range sortedKeys(s.Fixtures) {
		fixtures = append(fixtures, fixtureEntry{Entity: k, Rows: s.Fixtures[k]})
	}
	b.field("fixtures", fixtures)
	return b.bytes(), nil
}

type startRouteEntry struct {
	Persona string `json:"persona"`
	Route   string `json:"route"`
}

type fixtureEntry struct {
	Entity string       `json:"entity"`
	Rows   []FixtureRow `json:"rows"`
}

// MarshalJSON renders a fixture row's value map with sorted field
// names.
func (r FixtureRow) MarshalJSON() ([]byte, error) {
	b := newJSONObjectBuilder()
	b.field("loc", r.Loc)

	values := make([]fixtureValueEntry, 0, len(r.Values))
	for _, k := range sortedKeys(r.Values) {
		values = append(values, fixtureValueEntry{Field: k, Value: r.Values[k]})
	}
	b.field("values", values)
	return b.bytes(), nil
}

type fixtureValueEntry struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// MarshalJSON renders a signal's aggregate map with sorted output
// names.
func (s Signal) MarshalJSON() ([]byte, error) {
	b := newJSONObjectBuilder()
	b.field("loc", s.Loc)
	b.field("name", s.Name)
	b.field("source", s.Source)
	b.field("filter", s.Filter)
	b.field("sort", s.Sort)
	b.field("limit", s.Limit)
	b.field("display", s.Display)
	b.field("action", s.Action)

	agg := make([]aggregateEntry, 0, len(s.Aggregate))
	for _, k := range sortedKeys(s.Aggregate) {
		agg = append(agg, aggregateEntry{Output: k, Expr: s.Aggregate[k]})
	}
	b.field("aggregate", agg)

	variants := make([]personaVariantEntry, 0, len(s.PersonaVariant))
	for _, k := range sortedKeys(s.PersonaVariant) {
		v := s.PersonaVariant[k]
		variants = append(variants, personaVariantEntry{
			Persona: k,
			Sort:    v.Sort,
			Filter:  v.Filter,
			Display: v.Display,
		})
	}
	b.field("persona_variant", variants)
	return b.bytes(), nil
}

type personaVariantEntry struct {
	Persona string        `json:"persona"`
	Sort    string        `json:"sort"`
	Filter  any           `json:"filter"`
	Display SignalDisplay `json:"display"`
}

type aggregateEntry struct {
	Output string `json:"output"`
	Expr   any    `json:"expr"`
}

